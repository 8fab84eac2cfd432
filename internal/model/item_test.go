package model

import (
	"encoding/json"
	"testing"
)

func TestLostItemJSONRoundTrip(t *testing.T) {
	item := LostItem{
		ID:         "item-1",
		OwnerID:    "uid-1",
		OwnerEmail: "a@x.com",
		Status:     ItemStatusLost,
		Fields:     map[string]any{"title": "Lost Wallet", "description": "Black leather wallet"},
		CreatedAt:  "2026-01-02T15:04:05Z",
		UpdatedAt:  "2026-01-02T15:04:05Z",
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// The document must be flat: report fields next to system stamps.
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	if doc["title"] != "Lost Wallet" {
		t.Errorf("expected flattened title, got %v", doc["title"])
	}
	if doc["userId"] != "uid-1" {
		t.Errorf("expected userId 'uid-1', got %v", doc["userId"])
	}
	if doc["status"] != "lost" {
		t.Errorf("expected status 'lost', got %v", doc["status"])
	}

	var back LostItem
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.ID != item.ID || back.OwnerID != item.OwnerID || back.Status != item.Status {
		t.Errorf("round trip lost system stamps: %+v", back)
	}
	if back.Fields["title"] != "Lost Wallet" {
		t.Errorf("round trip lost report fields: %+v", back.Fields)
	}
}

func TestLostItemSystemKeysShadowReportFields(t *testing.T) {
	item := LostItem{
		ID:      "real-id",
		OwnerID: "real-owner",
		Status:  ItemStatusLost,
		Fields:  map[string]any{"id": "spoofed", "userId": "spoofed"},
	}

	data, _ := json.Marshal(item)
	var doc map[string]any
	json.Unmarshal(data, &doc)

	if doc["id"] != "real-id" {
		t.Errorf("system id shadowed by report field: %v", doc["id"])
	}
	if doc["userId"] != "real-owner" {
		t.Errorf("system userId shadowed by report field: %v", doc["userId"])
	}
}
