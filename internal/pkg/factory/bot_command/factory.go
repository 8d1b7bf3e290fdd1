package bot_command

import (
	"context"
	"fmt"

	"taxi-dispatch/internal/entities"
	"taxi-dispatch/internal/service/command"
)

type CommandHandlerFactory struct {
	dispatcher command.Dispatcher
}

func NewCommandHandlerFactory(dispatcher command.Dispatcher) *CommandHandlerFactory {
	return &CommandHandlerFactory{
		dispatcher: dispatcher,
	}
}

func (f *CommandHandlerFactory) GetHandler(kind entities.CommandKind) (command.ExecuteFn, error) {
	switch kind {
	case entities.CommandDriverOnline:
		return f.onlineHandler, nil
	case entities.CommandDriverOffline:
		return f.offlineHandler, nil
	case entities.CommandSubmitOrder:
		return f.submitHandler, nil
	case entities.CommandAcceptOrder:
		return f.acceptHandler, nil
	case entities.CommandRejectOrder:
		return f.rejectHandler, nil
	case entities.CommandAdvanceOrder:
		return f.advanceHandler, nil
	case entities.CommandCancelOrder:
		return f.cancelHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", command.ErrUndefinedCommand, kind)
	}
}

func (f *CommandHandlerFactory) onlineHandler(ctx context.Context, cmd entities.Command) error {
	_, err := f.dispatcher.RegisterDriverOnline(ctx, cmd.DriverID)
	if err != nil {
		return fmt.Errorf("register driver %d online: %w", cmd.DriverID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) offlineHandler(ctx context.Context, cmd entities.Command) error {
	_, err := f.dispatcher.RegisterDriverOffline(ctx, cmd.DriverID)
	if err != nil {
		return fmt.Errorf("register driver %d offline: %w", cmd.DriverID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) submitHandler(ctx context.Context, cmd entities.Command) error {
	passengerID := cmd.PassengerID
	_, err := f.dispatcher.SubmitOrder(ctx, entities.OrderModify{
		PassengerID: &passengerID,
		Pickup:      cmd.Pickup,
		Destination: cmd.Destination,
	})
	if err != nil {
		return fmt.Errorf("submit order for passenger %d: %w", cmd.PassengerID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) acceptHandler(ctx context.Context, cmd entities.Command) error {
	_, err := f.dispatcher.AcceptOrder(ctx, cmd.OrderID, cmd.DriverID)
	if err != nil {
		return fmt.Errorf("accept order %d: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) rejectHandler(ctx context.Context, cmd entities.Command) error {
	_, err := f.dispatcher.RejectOrder(ctx, cmd.OrderID, cmd.DriverID)
	if err != nil {
		return fmt.Errorf("reject order %d: %w", cmd.OrderID, err)
	}
	return nil
}

func (f *CommandHandlerFactory) advanceHandler(ctx context.Context, cmd entities.Command) error {
	_, err := f.dispatcher.AdvanceOrder(ctx, cmd.OrderID, cmd.DriverID, cmd.Status)
	if err != nil {
		return fmt.Errorf("advance order %d to %s: %w", cmd.OrderID, cmd.Status, err)
	}
	return nil
}

func (f *CommandHandlerFactory) cancelHandler(ctx context.Context, cmd entities.Command) error {
	_, err := f.dispatcher.CancelOrder(ctx, cmd.OrderID, cmd.PassengerID)
	if err != nil {
		return fmt.Errorf("cancel order %d: %w", cmd.OrderID, err)
	}
	return nil
}
