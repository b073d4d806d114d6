package dto

import "github.com/google/uuid"

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type WorkspaceResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type ListWorkspacesResponse struct {
	Items      []WorkspaceResponse `json:"items"`
	Total      int                 `json:"total"`
	PageSize   int                 `json:"page_size"`
	NextOffset int                 `json:"next_offset"`
}
