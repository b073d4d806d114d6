package dto

import "github.com/google/uuid"

type CreateModelRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	UserID      *uuid.UUID `json:"user_id"`
	Description string     `json:"description"`
	License     string     `json:"license"`
	Audience    string     `json:"audience"`
	UseCases    string     `json:"use_cases"`
	Limitations string     `json:"limitations"`
	TradeOffs   string     `json:"trade_offs"`
	Ethics      string     `json:"ethics"`
}

type UpdateModelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	License     *string `json:"license"`
	Audience    *string `json:"audience"`
	UseCases    *string `json:"use_cases"`
	Limitations *string `json:"limitations"`
	TradeOffs   *string `json:"trade_offs"`
	Ethics      *string `json:"ethics"`
}

type ModelResponse struct {
	ID            uuid.UUID  `json:"id"`
	CreatedAt     string     `json:"created_at"`
	UpdatedAt     string     `json:"updated_at"`
	WorkspaceID   uuid.UUID  `json:"workspace_id"`
	UserID        *uuid.UUID `json:"user_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	License       string     `json:"license"`
	Audience      string     `json:"audience"`
	UseCases      string     `json:"use_cases"`
	Limitations   string     `json:"limitations"`
	TradeOffs     string     `json:"trade_offs"`
	Ethics        string     `json:"ethics"`
	VersionCount  int        `json:"version_count"`
	LatestVersion *int       `json:"latest_version,omitempty"`
}

type ListModelsResponse struct {
	Items      []ModelResponse `json:"items"`
	Total      int             `json:"total"`
	PageSize   int             `json:"page_size"`
	NextOffset int             `json:"next_offset"`
}
