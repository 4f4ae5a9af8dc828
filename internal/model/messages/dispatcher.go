// Package messages turns webhook events into ledger operations and
// exactly one reply per inbound event.
package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"line-kakeibo-bot/internal/clients/line"
	"line-kakeibo-bot/internal/logger"
	"line-kakeibo-bot/internal/model/commands"
	"line-kakeibo-bot/internal/model/ledger"
)

const (
	totalReplyFormat          = "今月の合計金額は%s円です。"
	cigaretteTotalReplyFormat = "今月のタバコの合計金額は%s円です。"
	entryAddedMessage         = "家計簿に情報を追加しました。"
	malformedEntryMessage     = "入力エラー:入力が足りません。入力は「日付, 場所, 用途, 金額」のすべてを含んでください。"
	unrecognizedMessage       = "入力エラー:入力は「日付, 場所, 用途, 金額」か「合計」、もしくは「タバコ合計」を入力してください"

	noValueLiteral = "なし"

	cigaretteCategory = "タバコ"
)

type lineClient interface {
	ReplyMessage(ctx context.Context, replyToken, text string) error
	GetProfile(ctx context.Context, userID string) (line.Profile, error)
}

type Service struct {
	client   lineClient
	backends *ledger.Selector
	now      func() time.Time
}

func NewService(client lineClient, backends *ledger.Selector) *Service {
	return &Service{
		client:   client,
		backends: backends,
		now:      time.Now,
	}
}

// HandleEvent processes one webhook event to completion. Parse-level
// problems become guidance replies; storage and platform faults
// propagate to the HTTP layer.
func (s *Service) HandleEvent(ctx context.Context, ev line.Event) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleEvent")
	defer span.Finish()
	span.SetTag("event", ev.Type)

	start := time.Now()
	err := s.handle(ctx, ev)
	observeEvent(ev.Type, time.Since(start), err != nil)

	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, ev line.Event) error {
	switch ev.Type {
	case line.EventTypeMessage:
		return s.handleMessage(ctx, ev)
	case line.EventTypeFollow:
		return s.handleFollow(ctx, ev)
	case line.EventTypeUnfollow:
		return s.handleUnfollow(ctx, ev)
	default:
		logger.Info("skipping event", zap.String("type", ev.Type))
		return nil
	}
}

func (s *Service) handleMessage(ctx context.Context, ev line.Event) error {
	if ev.Message.Type != line.MessageTypeText {
		logger.Info("skipping non-text message", zap.String("type", ev.Message.Type))
		return nil
	}

	profile, err := s.client.GetProfile(ctx, ev.Source.UserID)
	if err != nil {
		return errors.Wrap(err, "handle message")
	}

	text := strings.ToLower(ev.Message.Text)
	reply, err := s.execute(ctx, profile.UserID, text)
	if err != nil {
		return errors.Wrap(err, "handle message")
	}

	return errors.Wrap(s.client.ReplyMessage(ctx, ev.ReplyToken, reply), "handle message")
}

func (s *Service) execute(ctx context.Context, userID, text string) (string, error) {
	backend := s.backends.ForUser(userID)

	cmd, err := commands.Parse(text, s.now())
	switch {
	case errors.Is(err, commands.ErrMalformedEntry):
		return malformedEntryMessage, nil
	case errors.Is(err, commands.ErrUnrecognizedCommand):
		return unrecognizedMessage, nil
	case err != nil:
		return "", err
	}

	switch cmd := cmd.(type) {
	case commands.TotalQuery:
		total, err := backend.MonthlyTotal(ctx, userID, "")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(totalReplyFormat, renderTotal(total)), nil

	case commands.CigaretteTotalQuery:
		total, err := backend.MonthlyTotal(ctx, userID, cigaretteCategory)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(cigaretteTotalReplyFormat, renderTotal(total)), nil

	case commands.Entry:
		if err := backend.Append(ctx, userID, cmd.Record); err != nil {
			return "", err
		}
		return entryAddedMessage, nil
	}
	return "", errors.Errorf("unhandled command %T", cmd)
}

func renderTotal(total ledger.Total) string {
	if !total.Ok {
		return noValueLiteral
	}
	return total.Value
}

func (s *Service) handleFollow(ctx context.Context, ev line.Event) error {
	logger.Info("followed, provisioning ledger", zap.String("user", ev.Source.UserID))
	backend := s.backends.ForUser(ev.Source.UserID)
	return errors.Wrap(backend.Provision(ctx, ev.Source.UserID), "handle follow")
}

// handleUnfollow is best effort: a failed teardown is logged, never
// surfaced, since there is nobody left to answer.
func (s *Service) handleUnfollow(ctx context.Context, ev line.Event) error {
	logger.Info("unfollowed, tearing ledger down", zap.String("user", ev.Source.UserID))
	backend := s.backends.ForUser(ev.Source.UserID)
	if err := backend.Teardown(ctx, ev.Source.UserID); err != nil {
		logger.Error("failed to tear down ledger", zap.String("user", ev.Source.UserID), zap.Error(err))
	}
	return nil
}
