package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/core/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(
		repositories.NewLoanRepository(db),
		repositories.NewBookRepository(db),
		repositories.NewUserRepository(db),
	)
}

func seedUser(t *testing.T, db *gorm.DB, documentID string) *models.User {
	user := &models.User{
		Name:       "Laura Gómez",
		Email:      documentID + "@test.local",
		DocumentID: documentID,
		Role:       "student",
		Status:     "active",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, code string, stock int) *models.Book {
	book := &models.Book{
		Title:          "Cien años de soledad",
		Author:         "Gabriel García Márquez",
		InternalCode:   code,
		StockAvailable: stock,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestCreateLoanDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "1001001001")
	book := seedBook(t, db, "LIB-001", 1)

	loan, err := svc.Create(ctx, &CreateLoanInput{
		UserID:   user.ID,
		BookID:   book.ID,
		Duration: "3days",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, loan.RefCode)
	assert.Equal(t, string(domain.LoanStatusActive), loan.Status)
	assert.True(t, loan.DueDate.After(loan.StartDate))

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, 0, stored.StockAvailable)
}

func TestCreateLoanByDocumentID(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "2002002002")
	book := seedBook(t, db, "LIB-002", 2)

	loan, err := svc.Create(ctx, &CreateLoanInput{
		DocumentID: user.DocumentID,
		BookID:     book.ID,
		Duration:   "15days",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loan.UserID)
}

func TestCreateLoanDueDateSkipsWeekends(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "3003003003")
	book := seedBook(t, db, "LIB-003", 1)

	loan, err := svc.Create(ctx, &CreateLoanInput{
		UserID:   user.ID,
		BookID:   book.ID,
		Duration: "3days",
	})
	require.NoError(t, err)

	assert.NotEqual(t, time.Saturday, loan.DueDate.Weekday())
	assert.NotEqual(t, time.Sunday, loan.DueDate.Weekday())
}

func TestCreateLoanRejectsInvalidDuration(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := seedUser(t, db, "4004004004")
	book := seedBook(t, db, "LIB-004", 1)

	_, err := svc.Create(context.Background(), &CreateLoanInput{
		UserID:   user.ID,
		BookID:   book.ID,
		Duration: "7days",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestCreateLoanBookAlreadyOnLoan(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	first := seedUser(t, db, "5005005005")
	second := seedUser(t, db, "6006006006")
	book := seedBook(t, db, "LIB-005", 2)

	_, err := svc.Create(ctx, &CreateLoanInput{UserID: first.ID, BookID: book.ID, Duration: "3days"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateLoanInput{UserID: second.ID, BookID: book.ID, Duration: "3days"})
	assert.ErrorIs(t, err, domain.ErrBookAlreadyOnLoan)
}

func TestCreateLoanOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := seedUser(t, db, "7007007007")
	book := seedBook(t, db, "LIB-006", 0)

	_, err := svc.Create(context.Background(), &CreateLoanInput{
		UserID:   user.ID,
		BookID:   book.ID,
		Duration: "3days",
	})
	assert.ErrorIs(t, err, domain.ErrBookUnavailable)
}

func TestCreateLoanBookNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := seedUser(t, db, "8008008008")

	_, err := svc.Create(context.Background(), &CreateLoanInput{
		UserID:   user.ID,
		BookID:   9999,
		Duration: "3days",
	})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestCreateLoanLimitReached(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "9009009009")
	for i := 0; i < domain.MaxActiveLoans; i++ {
		book := seedBook(t, db, "LIM-"+string(rune('A'+i)), 1)
		_, err := svc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: book.ID, Duration: "15days"})
		require.NoError(t, err)
	}

	extra := seedBook(t, db, "LIM-X", 1)
	_, err := svc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: extra.ID, Duration: "3days"})
	assert.ErrorIs(t, err, domain.ErrLoanLimitReached)
}

func TestCreateLoanDelinquentUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "1010101010")
	overdueBook := seedBook(t, db, "OVD-001", 1)

	// Plant a stored-active loan already past due
	require.NoError(t, db.Create(&models.Loan{
		RefCode:   "overdue-ref",
		UserID:    user.ID,
		BookID:    overdueBook.ID,
		StartDate: time.Now().AddDate(0, 0, -10),
		DueDate:   time.Now().AddDate(0, 0, -3),
		Status:    string(domain.LoanStatusActive),
		Duration:  "3days",
	}).Error)

	book := seedBook(t, db, "OVD-002", 1)
	_, err := svc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: book.ID, Duration: "3days"})
	assert.ErrorIs(t, err, domain.ErrUserDelinquent)
}

func TestCreateLoanInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := seedUser(t, db, "1111111111")
	require.NoError(t, db.Model(user).Update("status", "inactive").Error)
	book := seedBook(t, db, "INA-001", 1)

	_, err := svc.Create(context.Background(), &CreateLoanInput{
		UserID:   user.ID,
		BookID:   book.ID,
		Duration: "3days",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestReturnLoanRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "1212121212")
	book := seedBook(t, db, "RET-001", 1)

	loan, err := svc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: book.ID, Duration: "3days"})
	require.NoError(t, err)

	returned, err := svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.LoanStatusReturned), returned.Status)
	assert.NotNil(t, returned.ReturnDate)

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, 1, stored.StockAvailable)
}

func TestReturnLoanTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "1313131313")
	book := seedBook(t, db, "RET-002", 1)

	loan, err := svc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: book.ID, Duration: "3days"})
	require.NoError(t, err)

	_, err = svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	// Second return must not bump the stock again
	_, err = svc.Return(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotActive)

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, 1, stored.StockAvailable)
}

func TestReturnLoanNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	_, err := svc.Return(context.Background(), 4242)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestReturnMakesBookBorrowableAgain(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	first := seedUser(t, db, "1414141414")
	second := seedUser(t, db, "1515151515")
	book := seedBook(t, db, "RET-003", 1)

	loan, err := svc.Create(ctx, &CreateLoanInput{UserID: first.ID, BookID: book.ID, Duration: "3days"})
	require.NoError(t, err)

	_, err = svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateLoanInput{UserID: second.ID, BookID: book.ID, Duration: "15days"})
	assert.NoError(t, err)
}

func TestListOverdueReportsDerivedStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "1616161616")
	book := seedBook(t, db, "OVL-001", 1)

	require.NoError(t, db.Create(&models.Loan{
		RefCode:   "late-ref",
		UserID:    user.ID,
		BookID:    book.ID,
		StartDate: time.Now().AddDate(0, 0, -10),
		DueDate:   time.Now().AddDate(0, 0, -2),
		Status:    string(domain.LoanStatusActive),
		Duration:  "3days",
	}).Error)

	overdue, err := svc.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)

	// Stored status stays active; the response view derives overdue
	assert.Equal(t, string(domain.LoanStatusActive), overdue[0].Status)
	assert.Equal(t, string(domain.LoanStatusOverdue), string(overdue[0].EffectiveStatus(time.Now())))
}

func TestCheckEligibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)
	ctx := context.Background()

	user := seedUser(t, db, "1717171717")
	book := seedBook(t, db, "ELI-001", 1)

	report, err := svc.CheckEligibility(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, report.Eligible)
	assert.True(t, report.BookAvailable)

	_, err = svc.Create(ctx, &CreateLoanInput{UserID: user.ID, BookID: book.ID, Duration: "3days"})
	require.NoError(t, err)

	other := seedUser(t, db, "1818181818")
	report, err = svc.CheckEligibility(ctx, other.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, report.CanBorrow)
	assert.False(t, report.BookAvailable)
	assert.False(t, report.Eligible)
}
