package driver

import "taxi-dispatch/internal/entities"

func ToDomain(d *DriverDB) *entities.Driver {
	if d == nil {
		return nil
	}

	return &entities.Driver{
		ID:             d.ID,
		Name:           d.Name,
		Phone:          d.Phone,
		IsOnline:       d.IsOnline,
		IsActive:       d.IsActive,
		CurrentOrderID: d.CurrentOrderID,
		QueuePosition:  d.QueuePosition,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func FromDomainModify(driverModify *entities.DriverModify) *DriverModifyDB {
	if driverModify == nil {
		return nil
	}

	return &DriverModifyDB{
		ID:       driverModify.ID,
		Name:     driverModify.Name,
		Phone:    driverModify.Phone,
		IsOnline: driverModify.IsOnline,
		IsActive: driverModify.IsActive,
	}
}

func ToDomainList(driversDB []DriverDB) []entities.Driver {
	if len(driversDB) == 0 {
		return []entities.Driver{}
	}

	result := make([]entities.Driver, len(driversDB))
	for i, driverDB := range driversDB {
		result[i] = *ToDomain(&driverDB)
	}
	return result
}
