package repository

import (
	"context"
	"time"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

// CodeStore keeps verification records keyed by phone.
//
// Save overwrites any previous record for the phone and keeps it for retain,
// which callers set longer than the code lifetime so an expired record can
// still be told apart from one that was never issued. Get returns nil, nil
// when nothing is stored. Delete removes the record only while it still holds
// code, so a reissue that lands after Get is never purged, and reports whether
// this call removed it.
type CodeStore interface {
	Save(ctx context.Context, rec entity.VerificationRecord, retain time.Duration) error
	Get(ctx context.Context, phone string) (*entity.VerificationRecord, error)
	Delete(ctx context.Context, phone, code string) (bool, error)
}
