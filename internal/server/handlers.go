package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/pipeline"
	"github.com/gamedevCloudy/youtube-automation/internal/storage"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req pipeline.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("ingest request",
		zap.String("collection_id", req.CollectionID),
		zap.String("url", req.URL),
		zap.String("file_path", req.FilePath),
	)
	result, err := s.pipeline.Ingest(r.Context(), &req)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type upsertRequest struct {
	CollectionID string                  `json:"collection_id"`
	Units        []models.TranscriptUnit `json:"units"`
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := s.indexer.Upsert(r.Context(), req.CollectionID, req.Units)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("upsert failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"collection_id":  req.CollectionID,
		"accepted_count": n,
	})
}

type queryRequest struct {
	CollectionIDs []string `json:"collection_ids"`
	Query         string   `json:"query"`
	TopK          *int     `json:"top_k,omitempty"`
	Keyword       bool     `json:"keyword,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Absent top_k means the default; an explicit zero or negative is the
	// caller's mistake and is rejected by validation.
	topK := models.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	results, err := s.retriever.Query(r.Context(), &models.QueryRequest{
		CollectionIDs: req.CollectionIDs,
		Query:         req.Query,
		TopK:          topK,
		Keyword:       req.Keyword,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, models.ErrIndexUnavailable) {
			s.logger.Error("query backend unavailable", zap.Error(err))
			s.respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		s.logger.Error("query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []*models.SearchResult{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	list, err := s.storage.ListCollections(r.Context())
	if err != nil {
		s.logger.Error("list collections failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*models.CollectionInfo{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"collections": list})
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.indexer.DeleteCollection(r.Context(), id); err != nil {
		s.logger.Error("delete collection failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Deleting an absent collection reports success too; the end state is
	// identical.
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videos, err := s.storage.CountVideos(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chunks, err := s.storage.CountChunks(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := s.storage.CountRecords(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"videos":            videos,
		"chunks":            chunks,
		"records":           records,
		"vector_index_size": s.vectors.Size(),
		"collections":       s.vectors.Collections(),
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.VectorIndexDir,
		s.config.Storage.KeywordIndexPath,
		s.config.Storage.BlobDir,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = map[string]interface{}{
		"embedding_dimensions": s.config.Embedding.Dimensions,
		"split_chars":          s.config.Search.SplitChars,
		"split_overlap":        s.config.Search.SplitOverlap,
		"target_seconds":       s.config.Media.TargetSeconds,
		"blob_backend":         s.config.Storage.BlobBackend,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// respondPipelineError maps pipeline failures onto HTTP statuses: caller
// mistakes are 400, upstream acquisition problems are 502, the rest are 500.
func (s *Server) respondPipelineError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrInvalidArgument) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var ae *models.AcquisitionError
	if errors.As(err, &ae) {
		s.logger.Error("acquisition failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.logger.Error("ingest failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
