package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aircast/aircast/internal/api/models"
	"github.com/aircast/aircast/internal/api/response"
	"github.com/aircast/aircast/internal/cluster"
)

// ClusterHandler handles cluster aggregation for map markers.
type ClusterHandler struct {
	flags FlagChecker
}

// NewClusterHandler creates a new ClusterHandler.
func NewClusterHandler(flags FlagChecker) *ClusterHandler {
	return &ClusterHandler{flags: flags}
}

// Aggregate handles POST /v1/air-quality/clusters:aggregate - compute the
// aggregate summary, marker size, and optional heat layer weights for the
// station groups the map clustering produced.
func (h *ClusterHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	var req models.ClusterAggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	// Marker sizes are relative to the heaviest loaded station; fall back to
	// the cluster members when the caller did not send the loaded set.
	loaded := req.Loaded
	if len(loaded) == 0 {
		for _, members := range req.Clusters {
			loaded = append(loaded, members...)
		}
	}
	sizer := cluster.NewSizer(loaded)

	resp := models.ClusterAggregateResponse{
		Clusters: make([]models.ClusterView, 0, len(req.Clusters)),
	}
	for _, members := range req.Clusters {
		summary := cluster.Aggregate(members)
		resp.Clusters = append(resp.Clusters, models.ClusterView{
			Summary: summary,
			Size:    sizer.Size(summary),
		})
	}

	if h.heatLayerEnabled(r) && len(loaded) > 0 {
		resp.HeatPoints = cluster.HeatPoints(loaded)
	}

	response.JSON(w, r, http.StatusOK, resp)
}

func (h *ClusterHandler) heatLayerEnabled(r *http.Request) bool {
	if h.flags == nil {
		return true
	}
	return h.flags.IsHeatLayerEnabled(r.Context())
}
