package application

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/infrastructure/memorystore"
	"github.com/oksasatya/foodshare/pkg/apperror"
)

const testPhone = "0501234567"

type codeFixture struct {
	svc   *CodeService
	store *memorystore.CodeStore
	disp  *mockDispatcher
	now   time.Time
}

func newCodeFixture(t *testing.T, codes ...string) *codeFixture {
	t.Helper()
	f := &codeFixture{
		store: memorystore.NewCodeStore(),
		disp:  &mockDispatcher{},
		now:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store.WithClock(func() time.Time { return f.now })
	f.svc = NewCodeService(f.store, f.disp, quietLogger())
	f.svc.now = func() time.Time { return f.now }
	if len(codes) > 0 {
		i := 0
		f.svc.genCode = func() (string, error) {
			c := codes[i%len(codes)]
			i++
			return c, nil
		}
	}
	return f
}

func TestCodeService_IssueRejectsBadPhone(t *testing.T) {
	f := newCodeFixture(t)
	ctx := context.Background()

	for _, phone := range []string{"050123456", "0601234567", "05012345678", "abc"} {
		assert.ErrorIs(t, f.svc.Issue(ctx, phone), apperror.ErrInvalidPhone, phone)
	}
	assert.ErrorIs(t, f.svc.Issue(ctx, ""), apperror.ErrPhoneRequired)

	rec, err := f.store.Get(ctx, "050123456")
	require.NoError(t, err)
	assert.Nil(t, rec)
	f.disp.AssertNotCalled(t, "SendCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestCodeService_IssueStoresCodeWithFiveMinuteExpiry(t *testing.T) {
	f := newCodeFixture(t)
	ctx := context.Background()
	var sent string
	f.disp.On("SendCode", mock.Anything, testPhone, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(2) }).
		Return(nil).Once()

	require.NoError(t, f.svc.Issue(ctx, testPhone))

	rec, err := f.store.Get(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, rec)
	n, err := strconv.Atoi(rec.Code)
	require.NoError(t, err)
	assert.True(t, n >= 1000 && n <= 9999)
	assert.Equal(t, f.now.Add(5*time.Minute), rec.ExpiresAt)
	assert.Equal(t, rec.Code, sent)
	f.disp.AssertExpectations(t)
}

func TestCodeService_DispatchFailureIsNotReported(t *testing.T) {
	f := newCodeFixture(t, "4821")
	f.disp.On("SendCode", mock.Anything, testPhone, "4821").Return(errors.New("broker down"))

	require.NoError(t, f.svc.Issue(context.Background(), testPhone))
}

func TestCodeService_ReissueReplacesPreviousCode(t *testing.T) {
	f := newCodeFixture(t, "1111", "2222")
	ctx := context.Background()
	f.disp.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.Issue(ctx, testPhone))
	require.NoError(t, f.svc.Issue(ctx, testPhone))

	_, err := f.svc.Verify(ctx, testPhone, "1111")
	assert.ErrorIs(t, err, apperror.ErrCodeMismatch)
	vp, err := f.svc.Verify(ctx, testPhone, "2222")
	require.NoError(t, err)
	assert.Equal(t, testPhone, vp.Phone)
}

func TestCodeService_VerifyScenario(t *testing.T) {
	f := newCodeFixture(t, "4821")
	ctx := context.Background()
	f.disp.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.Issue(ctx, testPhone))

	// mismatch keeps the record
	_, err := f.svc.Verify(ctx, testPhone, "1234")
	assert.ErrorIs(t, err, apperror.ErrCodeMismatch)

	f.now = f.now.Add(2 * time.Minute)
	vp, err := f.svc.Verify(ctx, testPhone, "4821")
	require.NoError(t, err)
	assert.Equal(t, testPhone, vp.Phone)

	// single use
	_, err = f.svc.Verify(ctx, testPhone, "4821")
	assert.ErrorIs(t, err, apperror.ErrCodeNotFound)
}

func TestCodeService_VerifyNeverIssued(t *testing.T) {
	f := newCodeFixture(t)
	_, err := f.svc.Verify(context.Background(), testPhone, "4821")
	assert.ErrorIs(t, err, apperror.ErrCodeNotFound)
}

func TestCodeService_VerifyRequiresBothFields(t *testing.T) {
	f := newCodeFixture(t)
	_, err := f.svc.Verify(context.Background(), "", "4821")
	assert.ErrorIs(t, err, apperror.ErrCodeRequired)
	_, err = f.svc.Verify(context.Background(), testPhone, "")
	assert.ErrorIs(t, err, apperror.ErrCodeRequired)
}

func TestCodeService_ExpiredIsPurged(t *testing.T) {
	f := newCodeFixture(t, "4821")
	ctx := context.Background()
	f.disp.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.Issue(ctx, testPhone))
	f.now = f.now.Add(5*time.Minute + time.Second)

	_, err := f.svc.Verify(ctx, testPhone, "4821")
	assert.ErrorIs(t, err, apperror.ErrCodeExpired)

	_, err = f.svc.Verify(ctx, testPhone, "4821")
	assert.ErrorIs(t, err, apperror.ErrCodeNotFound)
}

func TestCodeService_ExpiryBoundaryIsInclusive(t *testing.T) {
	f := newCodeFixture(t, "4821")
	ctx := context.Background()
	f.disp.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.Issue(ctx, testPhone))
	f.now = f.now.Add(5 * time.Minute)

	_, err := f.svc.Verify(ctx, testPhone, "4821")
	assert.NoError(t, err)
}

func TestCodeService_ConcurrentVerifyHasOneWinner(t *testing.T) {
	f := newCodeFixture(t, "4821")
	ctx := context.Background()
	f.disp.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, f.svc.Issue(ctx, testPhone))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		notFound int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Verify(ctx, testPhone, "4821")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperror.ErrCodeNotFound):
				notFound++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, notFound)
}

// reissueOnGet lets a new code land between Verify's read and its delete.
type reissueOnGet struct {
	*memorystore.CodeStore
	after func()
}

func (r *reissueOnGet) Get(ctx context.Context, phone string) (*entity.VerificationRecord, error) {
	rec, err := r.CodeStore.Get(ctx, phone)
	if r.after != nil {
		after := r.after
		r.after = nil
		after()
	}
	return rec, err
}

func TestCodeService_VerifyKeepsCodeReissuedMidway(t *testing.T) {
	f := newCodeFixture(t, "4821")
	ctx := context.Background()
	f.disp.On("SendCode", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, f.svc.Issue(ctx, testPhone))

	store := &reissueOnGet{CodeStore: f.store}
	store.after = func() {
		fresh := entity.VerificationRecord{Phone: testPhone, Code: "7777", ExpiresAt: f.now.Add(CodeTTL)}
		require.NoError(t, f.store.Save(ctx, fresh, 2*CodeTTL))
	}
	f.svc.Store = store

	_, err := f.svc.Verify(ctx, testPhone, "4821")
	assert.ErrorIs(t, err, apperror.ErrCodeNotFound)

	rec, err := f.store.Get(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "7777", rec.Code)

	vp, err := f.svc.Verify(ctx, testPhone, "7777")
	require.NoError(t, err)
	assert.Equal(t, testPhone, vp.Phone)
}
