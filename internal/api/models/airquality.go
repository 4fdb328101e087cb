package models

import (
	"github.com/aircast/aircast/internal/cluster"
	"github.com/aircast/aircast/internal/history"
	"github.com/aircast/aircast/internal/station"
)

// NearbyAirQualityResponse is the response for nearby station discovery.
// Synthetic is true when the stations are generated placeholders served
// because the provider had nothing usable.
type NearbyAirQualityResponse struct {
	Stations  []station.Summary `json:"stations"`
	Count     int               `json:"count"`
	Synthetic bool              `json:"synthetic"`
	FetchedAt Timestamp         `json:"fetchedAt"`
}

// AirQualityHistoryResponse is the response for a station's PM2.5 time
// series, most recent point first.
type AirQualityHistoryResponse struct {
	Points    []history.Point `json:"points"`
	Count     int             `json:"count"`
	Synthetic bool            `json:"synthetic"`
}

// ClusterAggregateRequest carries the station membership of each map marker
// plus the full loaded set, which drives marker sizing and the heat layer.
type ClusterAggregateRequest struct {
	Clusters [][]station.Summary `json:"clusters" validate:"required"`
	Loaded   []station.Summary   `json:"loaded"`
}

// ClusterView is one computed cluster marker: the aggregate summary plus the
// marker diameter in pixels.
type ClusterView struct {
	cluster.Summary
	Size int `json:"size"`
}

// ClusterAggregateResponse is the response for cluster aggregation.
// HeatPoints is omitted when the heat layer is disabled.
type ClusterAggregateResponse struct {
	Clusters   []ClusterView       `json:"clusters"`
	HeatPoints []cluster.HeatPoint `json:"heatPoints,omitempty"`
}
