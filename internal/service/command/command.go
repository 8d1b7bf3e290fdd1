package command

import (
	"context"
	"fmt"

	"taxi-dispatch/internal/entities"
)

// Service исполняет команды чат-бота тем же диспетчером, что и REST.
// Ответ боту уходит событиями диспетчера, здесь результат не нужен.
type Service struct {
	commandFactory HandlerFactory
}

func New(commandFactory HandlerFactory) *Service {
	return &Service{
		commandFactory: commandFactory,
	}
}

func (s *Service) Execute(ctx context.Context, cmd entities.Command) error {
	executeFn, err := s.commandFactory.GetHandler(cmd.Kind)
	if err != nil {
		return err
	}

	if err := executeFn(ctx, cmd); err != nil {
		return fmt.Errorf("execute %s command: %w", cmd.Kind, err)
	}
	return nil
}
