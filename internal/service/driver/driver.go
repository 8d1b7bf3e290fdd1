package driver

import (
	"context"
	"fmt"
	"strings"

	"taxi-dispatch/internal/entities"
)

// Registry учетные данные водителей. Выход на линию и активность меняет
// только диспетчер, здесь их не трогаем.
type Registry struct {
	repository Repository
}

func New(repository Repository) *Registry {
	return &Registry{
		repository: repository,
	}
}

func (s *Registry) CreateDriver(ctx context.Context, driverModify entities.DriverModify) (int64, error) {
	if driverModify.Name == nil || driverModify.Phone == nil {
		return 0, ErrMissingRequiredFields
	}

	if !isValidName(*driverModify.Name) {
		return 0, ErrInvalidName
	}
	if !isValidPhone(*driverModify.Phone) {
		return 0, ErrInvalidPhone
	}

	id, err := s.repository.Create(ctx, entities.DriverModify{
		Name:  trimmed(driverModify.Name),
		Phone: trimmed(driverModify.Phone),
	})
	if err != nil {
		return 0, fmt.Errorf("create driver: %w", err)
	}

	return id, nil
}

func (s *Registry) UpdateDriver(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	if driverModify.ID == nil || *driverModify.ID <= 0 {
		return nil, ErrInvalidDriverID
	}
	if driverModify.Name == nil && driverModify.Phone == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	if driverModify.Name != nil && !isValidName(*driverModify.Name) {
		return nil, ErrInvalidName
	}
	if driverModify.Phone != nil && !isValidPhone(*driverModify.Phone) {
		return nil, ErrInvalidPhone
	}

	driver, err := s.repository.Update(ctx, entities.DriverModify{
		ID:    driverModify.ID,
		Name:  trimmed(driverModify.Name),
		Phone: trimmed(driverModify.Phone),
	})
	if err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}
	return driver, nil
}

func (s *Registry) GetDriver(ctx context.Context, id int64) (*entities.Driver, error) {
	if id <= 0 {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}

	return driver, nil
}

func (s *Registry) GetDrivers(ctx context.Context) ([]entities.Driver, error) {
	drivers, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get drivers: %w", err)
	}

	return drivers, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
