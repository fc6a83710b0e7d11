// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"net/http"
	"strconv"

	"github.com/ManuGH/vidcat/internal/log"
	"github.com/ManuGH/vidcat/internal/metrics"
	"github.com/ManuGH/vidcat/internal/video"
	"github.com/go-chi/chi/v5"
)

// parseID reads the {id} path segment. Anything that is not a base-10
// integer cannot name a record and is reported as not found.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, video.ErrNotFound
	}
	return id, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startOp(r, metrics.OpList)
	defer span.End()

	videos := s.store.List()
	s.observe(ctx, span, metrics.OpList, 0, nil)
	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startOp(r, metrics.OpRead)
	defer span.End()

	id, err := parseID(r)
	if err == nil {
		var v video.Video
		if v, err = s.store.FindByID(id); err == nil {
			s.observe(ctx, span, metrics.OpRead, id, nil)
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	s.observe(ctx, span, metrics.OpRead, id, err)
	writeError(w, err)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startOp(r, metrics.OpCreate)
	defer span.End()

	payload, err := video.DecodePayload(r.Body)
	if err != nil {
		s.observe(ctx, span, metrics.OpCreate, 0, err)
		writeError(w, err)
		return
	}

	draft, err := video.PrepareCreate(payload, s.policy)
	if err != nil {
		s.observe(ctx, span, metrics.OpCreate, 0, err)
		writeError(w, err)
		return
	}

	v := s.store.Insert(draft)
	s.observe(ctx, span, metrics.OpCreate, v.ID, nil)

	logger := log.WithContext(ctx, s.logger)
	logger.Info().
		Str(log.FieldEvent, "video.created").
		Int64(log.FieldVideoID, v.ID).
		Msg("video created")

	writeJSON(w, http.StatusCreated, v)
}

// handleUpdate checks existence before looking at the body, so an unknown id
// answers 404 whatever the payload.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startOp(r, metrics.OpUpdate)
	defer span.End()

	id, err := parseID(r)
	if err == nil {
		_, err = s.store.FindByID(id)
	}
	if err != nil {
		s.observe(ctx, span, metrics.OpUpdate, id, err)
		writeError(w, err)
		return
	}

	payload, err := video.DecodePayload(r.Body)
	if err != nil {
		s.observe(ctx, span, metrics.OpUpdate, id, err)
		writeError(w, err)
		return
	}

	patch, err := video.PrepareUpdate(payload, s.policy)
	if err != nil {
		s.observe(ctx, span, metrics.OpUpdate, id, err)
		writeError(w, err)
		return
	}

	// The record may have been deleted since the lookup.
	if err := s.store.UpdateByID(id, patch); err != nil {
		s.observe(ctx, span, metrics.OpUpdate, id, err)
		writeError(w, err)
		return
	}
	s.observe(ctx, span, metrics.OpUpdate, id, nil)

	logger := log.WithContext(ctx, s.logger)
	logger.Info().
		Str(log.FieldEvent, "video.updated").
		Int64(log.FieldVideoID, id).
		Bool("empty_patch", patch.Empty()).
		Msg("video updated")

	writeNoContent(w)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startOp(r, metrics.OpDelete)
	defer span.End()

	id, err := parseID(r)
	if err == nil {
		err = s.store.DeleteByID(id)
	}
	if err != nil {
		s.observe(ctx, span, metrics.OpDelete, id, err)
		writeError(w, err)
		return
	}
	s.observe(ctx, span, metrics.OpDelete, id, nil)

	logger := log.WithContext(ctx, s.logger)
	logger.Info().
		Str(log.FieldEvent, "video.deleted").
		Int64(log.FieldVideoID, id).
		Msg("video deleted")

	writeNoContent(w)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startOp(r, metrics.OpReset)
	defer span.End()

	dropped := s.store.Clear()
	s.observe(ctx, span, metrics.OpReset, 0, nil)

	logger := log.WithContext(ctx, s.logger)
	logger.Info().
		Str(log.FieldEvent, "store.reset").
		Int(log.FieldCount, dropped).
		Msg("catalogue cleared")

	writeNoContent(w)
}
