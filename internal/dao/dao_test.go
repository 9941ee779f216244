package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bloomfundr-settlement/internal/dal"
	"bloomfundr-settlement/internal/dto"
	mainmodel "bloomfundr-settlement/internal/model/main"
	ordermodel "bloomfundr-settlement/internal/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, dal.Migrate(db))
	return db
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedOrder(t *testing.T, db *gorm.DB, id, status string) {
	t.Helper()
	require.NoError(t, db.Create(&ordermodel.Order{
		ID:            id,
		OrderNumber:   "BF-" + id,
		CampaignID:    "c1",
		Subtotal:      d("100.00"),
		ProcessingFee: d("3.00"),
		PlatformFee:   d("10.00"),
		Total:         d("103.00"),
		PaymentStatus: status,
	}).Error)
}

func TestOrderDao_GetByIDMissing(t *testing.T) {
	o, err := NewOrderDao(newTestDB(t)).GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderDao_MarkPaidIsConditional(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "o1", ordermodel.PaymentStatusPending)
	seedOrder(t, db, "o2", ordermodel.PaymentStatusRefunded)
	seedOrder(t, db, "o3", ordermodel.PaymentStatusFailed)
	r := NewOrderDao(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	changed, err := r.MarkPaid(ctx, "o1", now, "pi_1")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = r.MarkPaid(ctx, "o1", now, "pi_1")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = r.MarkPaid(ctx, "o2", now, "")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = r.MarkPaid(ctx, "o3", now, "")
	require.NoError(t, err)
	assert.True(t, changed)

	o, err := r.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, ordermodel.PaymentStatusPaid, o.PaymentStatus)
	require.NotNil(t, o.PaidAt)
	require.NotNil(t, o.StripePaymentIntentID)
	assert.Equal(t, "pi_1", *o.StripePaymentIntentID)
}

func TestOrderDao_MarkFailedOnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "o1", ordermodel.PaymentStatusPending)
	seedOrder(t, db, "o2", ordermodel.PaymentStatusPaid)
	r := NewOrderDao(db)

	changed, err := r.MarkFailed(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = r.MarkFailed(context.Background(), "o2")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRecipientDao_IncrementEarnings(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&mainmodel.Florist{ID: "f1", BusinessName: "Petal Co", TotalLifetimeEarnings: d("10.00")}).Error)
	require.NoError(t, db.Create(&mainmodel.Organization{ID: "g1", Name: "PTA"}).Error)
	r := NewRecipientDao(db)
	ctx := context.Background()

	require.NoError(t, r.IncrementEarnings(ctx, ordermodel.RecipientFlorist, "f1", d("52.20")))
	require.NoError(t, r.IncrementEarnings(ctx, ordermodel.RecipientFlorist, "f1", d("0.80")))
	require.NoError(t, r.IncrementEarnings(ctx, ordermodel.RecipientOrganization, "g1", d("34.80")))

	f, err := r.GetFlorist(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "63.00", f.TotalLifetimeEarnings.StringFixed(2))
	g, err := r.GetOrganization(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "34.80", g.TotalLifetimeEarnings.StringFixed(2))

	assert.Error(t, r.IncrementEarnings(ctx, ordermodel.RecipientFlorist, "missing", d("1")))
	assert.Error(t, r.IncrementEarnings(ctx, "platform", "f1", d("1")))

	list, err := r.ListEarnings(ctx, ordermodel.RecipientFlorist)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "f1", list[0].RecipientID)
	assert.Equal(t, "63.00", list[0].Amount.StringFixed(2))
}

func TestRecipientDao_MissingRowsAreNil(t *testing.T) {
	r := NewRecipientDao(newTestDB(t))
	c, err := r.GetCampaign(context.Background(), "c404")
	require.NoError(t, err)
	assert.Nil(t, c)
	f, err := r.GetFlorist(context.Background(), "f404")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func payout(id uint64, orderID, recipientType, recipientID, amount, status string) *ordermodel.Payout {
	return &ordermodel.Payout{
		ID:            id,
		OrderID:       orderID,
		CampaignID:    "c1",
		RecipientType: recipientType,
		RecipientID:   recipientID,
		Amount:        d(amount),
		Status:        status,
	}
}

func TestPayoutDao_UniquePerLeg(t *testing.T) {
	r := NewPayoutDao(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, payout(1, "o1", ordermodel.RecipientFlorist, "f1", "52.20", ordermodel.PayoutStatusCompleted)))
	assert.Error(t, r.Insert(ctx, payout(2, "o1", ordermodel.RecipientFlorist, "f1", "52.20", ordermodel.PayoutStatusCompleted)))

	rev := payout(3, "o1", ordermodel.RecipientFlorist, "f1", "-52.20", ordermodel.PayoutStatusCompleted)
	rev.IsReversal = true
	require.NoError(t, r.Insert(ctx, rev))

	rows, err := r.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPayoutDao_ListFiltersAndPages(t *testing.T) {
	r := NewPayoutDao(newTestDB(t))
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		oid := fmt.Sprintf("o%d", i)
		require.NoError(t, r.Insert(ctx, payout(uint64(i*10), oid, ordermodel.RecipientFlorist, "f1", "10.00", ordermodel.PayoutStatusCompleted)))
		require.NoError(t, r.Insert(ctx, payout(uint64(i*10+1), oid, ordermodel.RecipientOrganization, "g1", "5.00", ordermodel.PayoutStatusPending)))
	}

	rows, total, err := r.List(ctx, dto.PayoutQuery{RecipientType: ordermodel.RecipientFlorist, PageNum: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 2)
	for _, p := range rows {
		assert.Equal(t, ordermodel.RecipientFlorist, p.RecipientType)
	}

	rows, total, err = r.List(ctx, dto.PayoutQuery{Status: ordermodel.PayoutStatusPending, PageNum: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 1)

	_, total, err = r.List(ctx, dto.PayoutQuery{CampaignID: "other", PageNum: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPayoutDao_SumLedger(t *testing.T) {
	r := NewPayoutDao(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, r.Insert(ctx, payout(1, "o1", ordermodel.RecipientFlorist, "f1", "52.20", ordermodel.PayoutStatusCompleted)))
	require.NoError(t, r.Insert(ctx, payout(2, "o2", ordermodel.RecipientFlorist, "f1", "10.00", ordermodel.PayoutStatusPending)))
	require.NoError(t, r.Insert(ctx, payout(3, "o3", ordermodel.RecipientFlorist, "f1", "99.00", ordermodel.PayoutStatusFailed)))
	rev := payout(4, "o1", ordermodel.RecipientFlorist, "f1", "-2.20", ordermodel.PayoutStatusCompleted)
	rev.IsReversal = true
	require.NoError(t, r.Insert(ctx, rev))
	require.NoError(t, r.Insert(ctx, payout(5, "o1", ordermodel.RecipientOrganization, "g1", "34.80", ordermodel.PayoutStatusCompleted)))

	sums, err := r.SumLedger(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "f1", sums[0].RecipientID)
	assert.Equal(t, "60.00", sums[0].Amount.StringFixed(2))
	assert.Equal(t, "g1", sums[1].RecipientID)
	assert.Equal(t, "34.80", sums[1].Amount.StringFixed(2))
}

func TestPayoutDao_SumLedgerSince(t *testing.T) {
	r := NewPayoutDao(newTestDB(t))
	ctx := context.Background()
	cutoff := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := payout(1, "o1", ordermodel.RecipientFlorist, "f1", "52.20", ordermodel.PayoutStatusCompleted)
	old.CreatedAt = cutoff.Add(-time.Hour)
	fresh := payout(2, "o2", ordermodel.RecipientFlorist, "f1", "10.00", ordermodel.PayoutStatusPending)
	fresh.CreatedAt = cutoff.Add(time.Minute)
	failed := payout(3, "o3", ordermodel.RecipientFlorist, "f2", "99.00", ordermodel.PayoutStatusFailed)
	failed.CreatedAt = cutoff.Add(time.Minute)
	orgOld := payout(4, "o1", ordermodel.RecipientOrganization, "g1", "34.80", ordermodel.PayoutStatusCompleted)
	orgOld.CreatedAt = cutoff.Add(-time.Hour)
	for _, p := range []*ordermodel.Payout{old, fresh, failed, orgOld} {
		require.NoError(t, r.Insert(ctx, p))
	}

	sums, err := r.SumLedgerSince(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "f1", sums[0].RecipientID)
	assert.Equal(t, "10.00", sums[0].Amount.StringFixed(2))
}

func TestWebhookEventDao_Dedupes(t *testing.T) {
	r := NewWebhookEventDao(newTestDB(t))
	ctx := context.Background()

	ev := &ordermodel.WebhookEvent{Provider: "stripe", ProviderEventID: "evt_1", EventType: "payment_intent.succeeded", PayloadJSON: "{}", SignatureValid: true}
	stored, created, err := r.CreateIfNotExists(ctx, ev)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, stored.Handled())

	require.NoError(t, r.MarkProcessed(ctx, stored.ID, "o1", ""))

	again := &ordermodel.WebhookEvent{Provider: "stripe", ProviderEventID: "evt_1", EventType: "payment_intent.succeeded", PayloadJSON: "{}"}
	stored, created, err = r.CreateIfNotExists(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, stored.Handled())
	assert.Equal(t, "o1", stored.OrderID)
}

func TestWebhookEventDao_FailedProcessingIsNotHandled(t *testing.T) {
	r := NewWebhookEventDao(newTestDB(t))
	ctx := context.Background()

	stored, _, err := r.CreateIfNotExists(ctx, &ordermodel.WebhookEvent{Provider: "stripe", ProviderEventID: "evt_2", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	require.NoError(t, r.MarkProcessed(ctx, stored.ID, "", "db down"))

	stored, created, err := r.CreateIfNotExists(ctx, &ordermodel.WebhookEvent{Provider: "stripe", ProviderEventID: "evt_2", EventType: "x", PayloadJSON: "{}"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.False(t, stored.Handled())
	assert.Equal(t, "db down", stored.ProcessingError)
}
