package models

import "github.com/google/uuid"

// assignID fills an empty primary key with a time-ordered UUIDv7 so that
// "id DESC" follows insertion order.
func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}
	generated, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = generated
	return nil
}
