package handlers

import (
	"encoding/json"
	"sort"

	"talentfolio-backend/internal/models"
)

func toCreatorResponse(creator *models.Creator, isOwner bool) models.CreatorResponse {
	resp := models.CreatorResponse{
		ID:                         creator.ID.String(),
		Username:                   creator.Username,
		Bio:                        creator.Bio.String,
		Location:                   creator.Location.String,
		PrimaryRoles:               creator.PrimaryRoles,
		AvatarURL:                  creator.AvatarURL.String,
		BannerURL:                  creator.BannerURL.String,
		MinimumSocialLinksVerified: creator.MinimumSocialLinksVerified,
		IsOwner:                    isOwner,
		CreatedAt:                  creator.CreatedAt,
	}
	if len(creator.SocialLinks) > 0 {
		var links map[string]string
		if err := json.Unmarshal(creator.SocialLinks, &links); err == nil {
			resp.SocialLinks = links
		}
	}
	return resp
}

func toOrganizationResponse(org *models.Organization) models.OrganizationResponse {
	return models.OrganizationResponse{
		ID:      org.ID.String(),
		Name:    org.Name,
		Website: org.Website.String,
		LogoURL: org.LogoURL.String,
	}
}

func toImageResponse(img *models.Image) models.ImageResponse {
	return models.ImageResponse{
		ID:             img.ID.String(),
		ProjectID:      img.ProjectID.String(),
		URL:            img.URL,
		SortOrder:      img.SortOrder,
		AltText:        img.AltText.String,
		Title:          img.Title.String,
		Description:    img.Description.String,
		AnalysisStatus: img.AnalysisStatus,
	}
}

func toVideoResponse(vid *models.Video) models.VideoResponse {
	return models.VideoResponse{
		ID:             vid.ID.String(),
		ProjectID:      vid.ProjectID.String(),
		URL:            vid.URL,
		Title:          vid.Title.String,
		Description:    vid.Description.String,
		YouTubeID:      vid.YouTubeID.String,
		VimeoID:        vid.VimeoID.String,
		AnalysisStatus: vid.AnalysisStatus,
	}
}

// toProjectResponse assembles a project with its media. The embedding column
// is intentionally absent from the response shape.
func toProjectResponse(project *models.Project, images []models.Image, videos []models.Video) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:               project.ID.String(),
		CreatorID:        project.CreatorID.String(),
		Title:            project.Title,
		Description:      project.Description.String,
		ShortDescription: project.ShortDescription.String,
		Roles:            project.Roles,
		ClientIDs:        project.ClientIDs,
		ThumbnailURL:     project.ThumbnailURL.String,
		Year:             int(project.Year.Int64),
		Featured:         project.Featured,
		CreatedAt:        project.CreatedAt,
		UpdatedAt:        project.UpdatedAt,
	}
	// Gallery order holds regardless of how the caller fetched the rows.
	sort.SliceStable(images, func(i, j int) bool { return images[i].SortOrder < images[j].SortOrder })
	for i := range images {
		resp.Images = append(resp.Images, toImageResponse(&images[i]))
	}
	for i := range videos {
		resp.Videos = append(resp.Videos, toVideoResponse(&videos[i]))
	}
	return resp
}

func toAnalysisJobResponse(job *models.AnalysisJob) models.AnalysisJobResponse {
	resp := models.AnalysisJobResponse{
		ID:            job.ID.String(),
		Status:        job.Status,
		Progress:      job.Progress,
		StatusMessage: job.StatusMessage.String,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
	if job.PortfolioID.Valid {
		resp.PortfolioID = job.PortfolioID.UUID.String()
	}
	if job.ProjectID.Valid {
		resp.ProjectID = job.ProjectID.UUID.String()
	}
	return resp
}

func toScrapeLogResponse(log *models.ScrapeLog) models.ScrapeLogResponse {
	resp := models.ScrapeLogResponse{
		ID:           log.ID.String(),
		URL:          log.URL,
		Status:       log.Status,
		HandleID:     log.HandleID.String,
		ErrorMessage: log.ErrorMessage.String,
		CreatedAt:    log.CreatedAt,
		UpdatedAt:    log.UpdatedAt,
	}
	if log.ProjectID.Valid {
		resp.ProjectID = log.ProjectID.UUID.String()
	}
	return resp
}
