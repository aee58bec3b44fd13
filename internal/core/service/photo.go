package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/capture"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/liststate"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// PhotoService registers site-photo metadata, one record per image. The
// binary travels inlined; the endpoint moves it to drive storage and fills
// in the real URL later, so fresh records carry the pending marker.
type PhotoService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	log     zerolog.Logger

	mu    sync.Mutex
	lists map[string]*liststate.List[domain.SitePhoto]
}

const pendingDriveURL = "pending_upload"

func NewPhotoService(gateway sheet.Gateway, journal *queue.JournalDispatcher, log zerolog.Logger) *PhotoService {
	return &PhotoService{
		gateway: gateway,
		journal: journal,
		log:     log,
		lists:   make(map[string]*liststate.List[domain.SitePhoto]),
	}
}

func (s *PhotoService) list(userID string) *liststate.List[domain.SitePhoto] {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[userID]
	if !ok {
		l = liststate.New(func(p domain.SitePhoto) string { return p.ID })
		s.lists[userID] = l
	}
	return l
}

func (s *PhotoService) Upload(ctx context.Context, actor ports.Actor, in ports.UploadPhotosInput) ([]domain.SitePhoto, error) {
	if len(in.Images) == 0 {
		return nil, domain.ErrNoImages
	}
	if !domain.ValidPhotoCategory(in.Category) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPhotoCategory, in.Category)
	}
	if in.PhotoDate == "" {
		in.PhotoDate = todayStr()
	}

	uploaded := make([]domain.SitePhoto, 0, len(in.Images))
	for i, raw := range in.Images {
		uri, err := capture.InlineImage(raw)
		if err != nil {
			return nil, err
		}

		fileName := fmt.Sprintf("site_%s_%s_%d.jpg", in.ProjectID, in.PhotoDate, i+1)
		payload := map[string]any{
			"project_id":  in.ProjectID,
			"type":        in.Category,
			"drive_url":   pendingDriveURL,
			"file_name":   fileName,
			"description": in.Description,
			"photo_date":  in.PhotoDate,
			"image":       uri,
		}

		res, err := s.gateway.Call(ctx, sheet.ActionUploadPhoto, payload)
		if err != nil {
			// Earlier photos in the batch are already registered; report how
			// far we got along with the failure.
			return uploaded, err
		}

		photo := domain.SitePhoto{
			ID:          strField(res.Data, "id"),
			ProjectID:   in.ProjectID,
			Category:    in.Category,
			FileName:    fileName,
			Description: in.Description,
			PhotoDate:   in.PhotoDate,
			DriveURL:    pendingDriveURL,
		}
		if photo.ID == "" {
			photo.ID = "local-" + uuid.NewString()
		}
		if url := strField(res.Data, "drive_url"); url != "" && url != pendingDriveURL {
			photo.DriveURL = url
		}

		s.list(actor.UserID).Append(photo)
		uploaded = append(uploaded, photo)

		metrics.SubmissionsTotal.WithLabelValues("photo").Inc()
		s.journal.Enqueue(&domain.SubmissionRecord{
			Kind:      "photo",
			Action:    sheet.ActionUploadPhoto,
			UserID:    actor.UserID,
			UserName:  actor.Name,
			ProjectID: in.ProjectID,
			Payload:   payload,
			Mock:      res.Mock,
		})
	}

	s.log.Info().Str("user_id", actor.UserID).Int("count", len(uploaded)).Str("project_id", in.ProjectID).Msg("site photos registered")
	return uploaded, nil
}
