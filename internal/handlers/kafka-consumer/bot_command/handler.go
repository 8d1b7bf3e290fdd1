package bot_command

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"taxi-dispatch/internal/service/command"
	"taxi-dispatch/internal/service/dispatch"
	"taxi-dispatch/pkg/logger"
)

type Handler struct {
	commandService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, commandService Service, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("consumer", "bot.command"))

	return &Handler{
		commandService:           commandService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("bot.command: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("bot.command: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing исполняет одну команду. Команды не повторяются:
// отказ диспетчера окончателен, сообщение помечается в любом случае,
// кроме отмены контекста, тогда оно будет прочитано заново.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var msg botCommandMessage
	err := json.Unmarshal(message.Value, &msg)
	if err != nil {
		h.log.With(
			logger.NewField("offset", message.Offset),
			logger.NewField("error", err),
		).Error("bot.command handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	cmd, err := msg.toCommand()
	if err != nil {
		h.log.With(
			logger.NewField("command", msg.Command),
			logger.NewField("offset", message.Offset),
			logger.NewField("error", err),
		).Error("bot.command handler received bad command")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("command", cmd.Kind.String()),
		logger.NewField("order", cmd.OrderID),
		logger.NewField("driver", cmd.DriverID),
		logger.NewField("passenger", cmd.PassengerID),
		logger.NewField("offset", message.Offset),
	)

	err = h.commandService.Execute(ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler context cancelled, message will be reprocessed")
			return true

		case dispatch.IsValidation(err) || errors.Is(err, command.ErrUndefinedCommand):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler invalid command")

		case dispatch.IsNotFound(err):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler unknown order or driver")

		case errors.Is(err, dispatch.ErrConflict):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler command refused")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("bot.command handler failed to execute command")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("bot.command: processed")

	sess.MarkMessage(message, "")
	return false
}
