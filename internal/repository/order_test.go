package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dealmarket/bff/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_ByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	now := time.Now()

	columns := []string{"id", "deal_id", "user_id", "address_id", "quantity", "amount", "status", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM orders WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ord-1", "deal-1", "user-1", nil, 3, "36.00", model.OrderStatusPending, now, now).
			AddRow("ord-2", "deal-2", "user-1", "addr-1", 1, "9.90", model.OrderStatusDelivered, now, now))

	orders, err := repo.ByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Nil(t, orders[0].AddressID)
	assert.True(t, orders[0].Amount.Equal(decimal.NewFromInt(36)))
	require.NotNil(t, orders[1].AddressID)
	assert.Equal(t, "addr-1", *orders[1].AddressID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectExec(`UPDATE payments`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Payment{ID: "pay-1", Amount: decimal.NewFromInt(10), UpdatedAt: time.Now()})

	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
