package configs

import (
	"database/sql"
	"math"
	"strconv"
	"sync"

	"github.com/mattn/go-sqlite3"
)

const sqliteDriverName = "sqlite3_foodmap"

var registerOnce sync.Once

// SQLiteDriverName registers (once) a sqlite3 driver whose connections carry
// the math functions used by the distance expression, and returns its name.
func SQLiteDriverName() string {
	registerOnce.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: registerMathFunctions,
		})
	})
	return sqliteDriverName
}

// toFloat accepts any SQLite value: NUMERIC columns hand integral
// coordinates over as INTEGER, and literals like 2 are INTEGER too.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case []byte:
		f, _ := strconv.ParseFloat(string(x), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return math.NaN()
	}
}

func unary(fn func(float64) float64) func(any) float64 {
	return func(v any) float64 { return fn(toFloat(v)) }
}

func registerMathFunctions(conn *sqlite3.SQLiteConn) error {
	funcs := map[string]any{
		"radians": unary(func(deg float64) float64 { return deg * math.Pi / 180 }),
		"sin":     unary(math.Sin),
		"cos":     unary(math.Cos),
		// rounding can push the haversine term a hair above 1
		"asin":  unary(func(x float64) float64 { return math.Asin(math.Max(-1, math.Min(1, x))) }),
		"sqrt":  unary(math.Sqrt),
		"power": func(x, y any) float64 { return math.Pow(toFloat(x), toFloat(y)) },
	}
	for name, impl := range funcs {
		if err := conn.RegisterFunc(name, impl, true); err != nil {
			return err
		}
	}
	return nil
}
