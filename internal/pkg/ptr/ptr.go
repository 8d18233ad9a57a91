package ptr

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func Of[T any](v T) *T {
	return &v
}

func Int64FromPgtype(pi pgtype.Int8) *int64 {
	if !pi.Valid {
		return nil
	}
	return &pi.Int64
}

func TimeFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	return &pt.Time
}
