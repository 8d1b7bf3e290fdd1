package bot_command

import (
	"fmt"

	"taxi-dispatch/internal/entities"
)

type place struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// botCommandMessage сообщение топика команд чат-бота.
type botCommandMessage struct {
	Command     string `json:"command"`
	DriverID    int64  `json:"driver_id,omitempty"`
	PassengerID int64  `json:"passenger_id,omitempty"`
	OrderID     int64  `json:"order_id,omitempty"`
	Status      string `json:"status,omitempty"`
	Pickup      *place `json:"pickup,omitempty"`
	Destination *place `json:"destination,omitempty"`
}

func (m botCommandMessage) toCommand() (entities.Command, error) {
	kind, err := entities.ParseCommandKind(m.Command)
	if err != nil {
		return entities.Command{}, err
	}

	cmd := entities.Command{
		Kind:        kind,
		DriverID:    m.DriverID,
		PassengerID: m.PassengerID,
		OrderID:     m.OrderID,
		Pickup:      m.Pickup.toEntity(),
		Destination: m.Destination.toEntity(),
	}

	if kind == entities.CommandAdvanceOrder {
		cmd.Status, err = entities.ParseOrderStatus(m.Status)
		if err != nil {
			return entities.Command{}, fmt.Errorf("advance command: %w", err)
		}
	}
	return cmd, nil
}

func (p *place) toEntity() *entities.Place {
	if p == nil {
		return nil
	}
	return &entities.Place{
		Address: p.Address,
		Lat:     p.Lat,
		Lng:     p.Lng,
	}
}
