// Package storage - общие ошибки драйверов хранилища бронирований (postgres, memory)
package storage

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrVersionConflict возвращается, когда бронирование изменено после чтения
	ErrVersionConflict = errors.New("storage: booking version conflict")

	// ErrDuplicateReservationNumber возвращается при нарушении уникальности номера бронирования
	ErrDuplicateReservationNumber = errors.New("storage: duplicate reservation number")
)
