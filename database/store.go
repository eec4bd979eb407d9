package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/shop-dataset/dataset"
	"github.com/yeremiapane/shop-dataset/models"
	"github.com/yeremiapane/shop-dataset/utils"
)

const batchSize = 500

// Migrate creates or updates the four dataset tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Export replaces the database contents with ds inside one transaction.
func Export(ctx context.Context, db *gorm.DB, ds *models.Dataset) error {
	if err := Migrate(ctx, db); err != nil {
		return err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// children first
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&models.OrderItem{}, &models.Order{}, &models.Product{}, &models.Customer{}} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		if err := insert(tx, models.TableCustomers, ds.Customers); err != nil {
			return err
		}
		if err := insert(tx, models.TableProducts, ds.Products); err != nil {
			return err
		}
		if err := insert(tx, models.TableOrders, ds.Orders); err != nil {
			return err
		}
		return insert(tx, models.TableOrderItems, ds.OrderItems)
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	utils.Info().WithField("rows", ds.RowCounts()).Info("dataset exported to database")
	return nil
}

func insert[T any](tx *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	utils.Info().WithFields(logrus.Fields{"table": table, "rows": len(rows)}).Debug("table written")
	return nil
}

// LoadTables reads every dataset table back as untyped rows ordered by id.
// A table that does not exist is recorded as missing in the snapshot.
func LoadTables(ctx context.Context, db *gorm.DB) *dataset.Snapshot {
	snap := dataset.NewSnapshot()
	for _, name := range models.TableNames {
		t, err := loadTable(ctx, db, name)
		if err != nil {
			snap.Fail(name, err)
			continue
		}
		snap.Put(t)
	}
	return snap
}

func loadTable(ctx context.Context, db *gorm.DB, name string) (*dataset.Table, error) {
	db = db.WithContext(ctx)
	if !db.Migrator().HasTable(name) {
		return nil, fmt.Errorf("%w: %s", dataset.ErrMissingTable, name)
	}

	rows, err := db.Table(name).Order("id").Rows()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	t := &dataset.Table{Name: name, Columns: cols}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = cell(v)
		}
		t.Rows = append(t.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return t, nil
}

// cell renders a driver value the way the CSV writer would. NULL is empty.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Equal(time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, x.Location())) {
			return x.Format(models.DateLayout)
		}
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
