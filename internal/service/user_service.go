package service

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/sardorbek/kalit/internal/dto"
	"github.com/sardorbek/kalit/internal/model"
	"github.com/sardorbek/kalit/internal/repository"
	"golang.org/x/sync/errgroup"
)

// broadcastConcurrency bounds parallel deliveries during a fan-out so a
// large user base does not hammer the transport.
const broadcastConcurrency = 8

// UserService registers chat users and fans admin messages out to them.
type UserService interface {
	Register(req dto.RegisterUserRequest) error
	TouchUsername(id int64, username string)
	IsRegistered(id int64) (bool, error)
	Broadcast(text string) (*dto.BroadcastReportDTO, error)
}

type userService struct {
	userRepo repository.UserRepository
	notifier Notifier
}

func NewUserService(userRepo repository.UserRepository, notifier Notifier) UserService {
	return &userService{userRepo: userRepo, notifier: notifier}
}

func (s *userService) Register(req dto.RegisterUserRequest) error {
	user := model.User{
		ID:       req.ID,
		Name:     req.Name,
		Phone:    req.Phone,
		Username: req.Username,
	}
	if err := s.userRepo.Upsert(&user); err != nil {
		return fmt.Errorf("registering user %d: %w", req.ID, err)
	}
	log.Info().Int64("userID", req.ID).Msg("User registered")
	return nil
}

// TouchUsername refreshes the stored handle on every interaction.
// Failures are logged and swallowed; the handle is cosmetic.
func (s *userService) TouchUsername(id int64, username string) {
	if err := s.userRepo.UpdateUsername(id, username); err != nil {
		log.Warn().Err(err).Int64("userID", id).Msg("Failed to refresh username")
	}
}

func (s *userService) IsRegistered(id int64) (bool, error) {
	return s.userRepo.Exists(id)
}

// Broadcast delivers text to every registered user. Per-recipient
// failures are logged and counted, never aborting the batch: the report
// carries sent/total.
func (s *userService) Broadcast(text string) (*dto.BroadcastReportDTO, error) {
	ids, err := s.userRepo.AllIDs()
	if err != nil {
		return nil, fmt.Errorf("loading broadcast recipients: %w", err)
	}

	var sent atomic.Int64
	var g errgroup.Group
	g.SetLimit(broadcastConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := s.notifier.Send(id, text); err != nil {
				log.Error().Err(err).Int64("recipientID", id).Msg("Broadcast delivery failed")
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	report := &dto.BroadcastReportDTO{Sent: int(sent.Load()), Total: len(ids)}
	log.Info().Int("sent", report.Sent).Int("total", report.Total).Msg("Broadcast finished")
	return report, nil
}
