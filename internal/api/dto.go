package api

import (
	"time"

	"github.com/GIVandez/plot-twister/internal/domain"
)

type projectResponse struct {
	ID        string    `json:"project_id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Owner:     p.Owner,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type pageResponse struct {
	ID        string `json:"page_id"`
	ProjectID string `json:"project_id"`
	Number    int    `json:"number"`
	Text      string `json:"text"`
}

func toPageResponse(p *domain.Page) pageResponse {
	return pageResponse{ID: p.ID, ProjectID: p.ProjectID, Number: p.Number, Text: p.Text}
}

type frameResponse struct {
	ID          string  `json:"frame_id"`
	ProjectID   string  `json:"project_id"`
	Number      int     `json:"number"`
	StartTime   int     `json:"start_time"`
	EndTime     int     `json:"end_time"`
	Description string  `json:"description"`
	PicPath     string  `json:"pic_path"`
	Connected   *string `json:"connected"`
}

func toFrameResponse(f *domain.Frame) frameResponse {
	return frameResponse{
		ID:          f.ID,
		ProjectID:   f.ProjectID,
		Number:      f.Number,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Description: f.Description,
		PicPath:     f.PicPath,
		Connected:   f.ConnectedPage,
	}
}

func toFrameList(frames []*domain.Frame) []frameResponse {
	out := make([]frameResponse, len(frames))
	for i, f := range frames {
		out[i] = toFrameResponse(f)
	}
	return out
}

type createProjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Owner string `json:"owner"`
}

type renameProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type createPageRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Number    int    `json:"number"`
	Text      string `json:"text"`
}

type updatePageRequest struct {
	Text string `json:"text"`
}

type createFrameRequest struct {
	ProjectID   string  `json:"project_id" binding:"required"`
	StartTime   *int    `json:"start_time" binding:"required"`
	EndTime     *int    `json:"end_time" binding:"required"`
	Description string  `json:"description"`
	Number      *int    `json:"number"`
	Connected   *string `json:"connected"`
}

type numberRequest struct {
	Number *int `json:"number" binding:"required"`
}

type startTimeRequest struct {
	StartTime *int `json:"start_time" binding:"required"`
}

type endTimeRequest struct {
	EndTime *int `json:"end_time" binding:"required"`
}

type descriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

type connectRequest struct {
	PageID string `json:"page_id" binding:"required"`
}
