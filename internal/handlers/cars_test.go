package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drivehub-backend/internal/booking"
	"drivehub-backend/internal/dto"
	"drivehub-backend/internal/models"
)

type fakeCarsDB struct {
	execSQL   []string
	execArgs  [][]any
	queryArgs []any
	row       pgx.Row
}

func (f *fakeCarsDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, arguments)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeCarsDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queryArgs = args
	return emptyRows{}, nil
}

func (f *fakeCarsDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.row != nil {
		return f.row
	}
	return noRow{}
}

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

type noRow struct{}

func (noRow) Scan(dest ...any) error { return pgx.ErrNoRows }

// countRow scans itself into the first destination
type countRow int

func (r countRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = int(r)
	return nil
}

// carRow scans a full cars row in column order
type carRow struct{ car models.Car }

func (r carRow) Scan(dest ...any) error {
	*(dest[0].(*uuid.UUID)) = r.car.ID
	*(dest[1].(*string)) = r.car.Name
	*(dest[2].(*string)) = r.car.Brand
	*(dest[3].(*string)) = r.car.Type
	*(dest[4].(*float64)) = r.car.PricePerDay
	*(dest[5].(*string)) = r.car.ImageURL
	*(dest[6].(*bool)) = r.car.Available
	*(dest[7].(*string)) = r.car.FuelType
	*(dest[8].(*int)) = r.car.Seats
	*(dest[9].(*time.Time)) = r.car.CreatedAt
	*(dest[10].(*time.Time)) = r.car.UpdatedAt
	return nil
}

func newCarsHandler(db *fakeCarsDB) *CarsHandler {
	return &CarsHandler{db: db, logger: zap.NewNop()}
}

func TestCreateCarHandler(t *testing.T) {
	identity := booking.Identity{UserID: uuid.New(), Email: "fleet@example.com"}

	t.Run("created", func(t *testing.T) {
		db := &fakeCarsDB{}
		h := newCarsHandler(db)
		body := `{"name":"Model 3","brand":"Tesla","price_per_day":75,"fuel_type":"EV","seats":5}`
		rec := httptest.NewRecorder()
		h.CreateCar(rec, requestWithIdentity(http.MethodPost, "/api/cars", body, identity))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CarResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Model 3", resp.Name)
		assert.Equal(t, 75.0, resp.PricePerDay)
		assert.Equal(t, "ev", resp.FuelType)
		assert.True(t, resp.Available)
		assert.Len(t, db.execSQL, 1)
	})

	t.Run("nonpositive price refused", func(t *testing.T) {
		for _, price := range []string{"0", "-10"} {
			db := &fakeCarsDB{}
			h := newCarsHandler(db)
			body := `{"name":"Model 3","brand":"Tesla","price_per_day":` + price + `,"fuel_type":"ev"}`
			rec := httptest.NewRecorder()
			h.CreateCar(rec, requestWithIdentity(http.MethodPost, "/api/cars", body, identity))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "price_per_day")
			assert.Empty(t, db.execSQL)
		}
	})

	t.Run("unknown fuel type refused", func(t *testing.T) {
		db := &fakeCarsDB{}
		h := newCarsHandler(db)
		body := `{"name":"Prius","brand":"Toyota","price_per_day":40,"fuel_type":"hybrid"}`
		rec := httptest.NewRecorder()
		h.CreateCar(rec, requestWithIdentity(http.MethodPost, "/api/cars", body, identity))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "fuel_type")
		assert.Empty(t, db.execSQL)
	})

	t.Run("missing name and brand", func(t *testing.T) {
		db := &fakeCarsDB{}
		h := newCarsHandler(db)
		body := `{"price_per_day":40,"fuel_type":"petrol"}`
		rec := httptest.NewRecorder()
		h.CreateCar(rec, requestWithIdentity(http.MethodPost, "/api/cars", body, identity))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, db.execSQL)
	})

	t.Run("no identity", func(t *testing.T) {
		h := newCarsHandler(&fakeCarsDB{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cars", nil)
		h.CreateCar(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateCarHandler(t *testing.T) {
	identity := booking.Identity{UserID: uuid.New(), Email: "fleet@example.com"}
	existing := models.Car{
		ID:          uuid.New(),
		Name:        "Yaris",
		Brand:       "Toyota",
		PricePerDay: 40,
		Available:   true,
		FuelType:    "petrol",
		Seats:       5,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	t.Run("price updated", func(t *testing.T) {
		db := &fakeCarsDB{row: carRow{car: existing}}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.UpdateCar(rec, requestWithIdentity(http.MethodPut, "/api/cars/"+existing.ID.String(), `{"price_per_day":55}`, identity))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CarResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 55.0, resp.PricePerDay)
		assert.Equal(t, "Yaris", resp.Name)
		assert.Len(t, db.execSQL, 1)
	})

	t.Run("nonpositive price refused", func(t *testing.T) {
		db := &fakeCarsDB{row: carRow{car: existing}}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.UpdateCar(rec, requestWithIdentity(http.MethodPut, "/api/cars/"+existing.ID.String(), `{"price_per_day":0}`, identity))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "price_per_day")
		assert.Empty(t, db.execSQL)
	})

	t.Run("unknown fuel type refused", func(t *testing.T) {
		db := &fakeCarsDB{row: carRow{car: existing}}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.UpdateCar(rec, requestWithIdentity(http.MethodPut, "/api/cars/"+existing.ID.String(), `{"fuel_type":"steam"}`, identity))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "fuel_type")
		assert.Empty(t, db.execSQL)
	})

	t.Run("car not found", func(t *testing.T) {
		db := &fakeCarsDB{}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.UpdateCar(rec, requestWithIdentity(http.MethodPut, "/api/cars/"+uuid.NewString(), `{"price_per_day":55}`, identity))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListCarsHandler(t *testing.T) {
	t.Run("unknown fuel filter refused", func(t *testing.T) {
		h := newCarsHandler(&fakeCarsDB{})
		rec := httptest.NewRecorder()
		h.ListCars(rec, httptest.NewRequest(http.MethodGet, "/api/cars?fuel_type=hybrid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "fuel_type")
	})

	t.Run("default pagination", func(t *testing.T) {
		db := &fakeCarsDB{row: countRow(7)}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.ListCars(rec, httptest.NewRequest(http.MethodGet, "/api/cars", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, db.queryArgs, 4)
		assert.Equal(t, 20, db.queryArgs[2])
		assert.Equal(t, 0, db.queryArgs[3])

		var resp dto.CarListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.Pagination.Total)
		assert.Equal(t, 20, resp.Pagination.Limit)
	})

	t.Run("limit and offset pass through", func(t *testing.T) {
		db := &fakeCarsDB{row: countRow(0)}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.ListCars(rec, httptest.NewRequest(http.MethodGet, "/api/cars?limit=5&offset=10", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, db.queryArgs, 4)
		assert.Equal(t, 5, db.queryArgs[2])
		assert.Equal(t, 10, db.queryArgs[3])
	})

	t.Run("limit clamped", func(t *testing.T) {
		db := &fakeCarsDB{row: countRow(0)}
		h := newCarsHandler(db)
		rec := httptest.NewRecorder()
		h.ListCars(rec, httptest.NewRequest(http.MethodGet, "/api/cars?limit=500", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, db.queryArgs, 4)
		assert.Equal(t, 100, db.queryArgs[2])
	})
}
