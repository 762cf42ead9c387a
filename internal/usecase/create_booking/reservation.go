package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// UUIDReservationNumbers номера вида BK-20261015-1A2B3C4D на основе UUIDv4
type UUIDReservationNumbers struct{}

// Next возвращает новый номер бронирования
func (UUIDReservationNumbers) Next(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s-%s", domain.ReservationNumberPrefix, now.UTC().Format("20060102"), id[:8])
}
