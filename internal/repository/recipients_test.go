package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecipientsRepository_GetRecipients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecipientsRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"member_id", "member_name", "fcm_token", "phone"}).
		AddRow("m1", "Alice", "token-1", "+15550001").
		AddRow("m2", "Bob", nil, nil) // 未注册推送和手机号

	mock.ExpectQuery("SELECT(.|\n)+FROM family_members").
		WithArgs("elder-1").
		WillReturnRows(rows)

	recipients, err := repo.GetRecipients(context.Background(), "elder-1")
	require.NoError(t, err)

	require.Len(t, recipients, 2)
	assert.Equal(t, "Alice", recipients[0].Name)
	assert.Equal(t, "token-1", recipients[0].FCMToken)
	assert.Equal(t, "+15550001", recipients[0].Phone)

	// NULL 字段映射为空字符串
	assert.Equal(t, "Bob", recipients[1].Name)
	assert.Empty(t, recipients[1].FCMToken)
	assert.Empty(t, recipients[1].Phone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipientsRepository_GetRecipients_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecipientsRepository(db, zap.NewNop())

	mock.ExpectQuery("SELECT(.|\n)+FROM family_members").
		WithArgs("elder-no-family").
		WillReturnRows(sqlmock.NewRows([]string{"member_id", "member_name", "fcm_token", "phone"}))

	recipients, err := repo.GetRecipients(context.Background(), "elder-no-family")
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestRecipientsRepository_GetRecipients_MissingElderID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecipientsRepository(db, zap.NewNop())

	_, err = repo.GetRecipients(context.Background(), "")
	assert.Error(t, err)
}
