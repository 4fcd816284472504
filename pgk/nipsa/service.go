package nipsa

import (
	"errors"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/saveblush/annotate-api/core/cctx"
	"github.com/saveblush/annotate-api/core/config"
	"github.com/saveblush/annotate-api/core/generic"
	"github.com/saveblush/annotate-api/core/utils/logger"
	"github.com/saveblush/annotate-api/models"
	"github.com/saveblush/annotate-api/pgk/notify"
)

// Service service interface
// Flag and Unflag are idempotent on the store; the change notice is
// published on every call either way, after the store step.
type Service interface {
	Flag(c *cctx.Context, userID string) error
	Unflag(c *cctx.Context, userID string) error
	IsFlagged(c *cctx.Context, userID string) (bool, error)
	FlaggedUserIDs(c *cctx.Context) ([]string, error)
	Announce(c *cctx.Context) error
}

type service struct {
	config     *config.Configs
	repository Repository
	notify     notify.Service
}

func NewService() Service {
	return &service{
		config:     config.CF,
		repository: NewRepository(),
		notify:     notify.NewService(),
	}
}

// Flag mark a user NIPSA
func (s *service) Flag(c *cctx.Context, userID string) error {
	fetch, err := s.repository.FindByUserID(c.GetDatabase(), userID)
	if err != nil {
		logger.Log.Errorf("find flag error: %s", err)
		return err
	}

	if generic.IsEmpty(fetch) {
		err := s.repository.Insert(c.GetDatabase(), &models.NipsaUser{UserID: userID})
		// a concurrent Flag for the same user may win the insert;
		// the unique key converges the state either way
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Log.Errorf("insert flag error: %s", err)
			return err
		}
	}

	return s.publish(models.FlagActionNipsa, userID)
}

// Unflag clear a user's NIPSA flag
func (s *service) Unflag(c *cctx.Context, userID string) error {
	fetch, err := s.repository.FindByUserID(c.GetDatabase(), userID)
	if err != nil {
		logger.Log.Errorf("find flag error: %s", err)
		return err
	}

	if !generic.IsEmpty(fetch) {
		err := s.repository.Delete(c.GetDatabase(), &models.NipsaUser{UserID: userID})
		if err != nil {
			logger.Log.Errorf("delete flag error: %s", err)
			return err
		}
	}

	return s.publish(models.FlagActionUnnipsa, userID)
}

// IsFlagged report whether a user is currently NIPSA'd
func (s *service) IsFlagged(c *cctx.Context, userID string) (bool, error) {
	fetch, err := s.repository.FindByUserID(c.GetDatabase(), userID)
	if err != nil {
		logger.Log.Errorf("find flag error: %s", err)
		return false, err
	}

	return !generic.IsEmpty(fetch), nil
}

// FlaggedUserIDs all flagged user ids, in store order
func (s *service) FlaggedUserIDs(c *cctx.Context) ([]string, error) {
	fetch, err := s.repository.FindAll(c.GetDatabase())
	if err != nil {
		logger.Log.Errorf("find flags error: %s", err)
		return nil, err
	}

	res := []string{}
	for _, v := range fetch {
		res = append(res, v.UserID)
	}

	return res, nil
}

// Announce republish a flag notice for every flagged user.
// Lets notification consumers that joined late converge on the flag set.
func (s *service) Announce(c *cctx.Context) error {
	userIDs, err := s.FlaggedUserIDs(c)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		err := s.publish(models.FlagActionNipsa, userID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *service) publish(action, userID string) error {
	b, err := json.Marshal(&models.FlagNotice{Action: action, UserID: userID})
	if err != nil {
		return err
	}

	err = s.notify.Publish(notify.TopicFlags, b)
	if err != nil {
		logger.Log.Errorf("publish flag notice error: %s", err)
		return err
	}

	return nil
}
