package logger

import (
	"go.uber.org/zap"

	"github.com/dropDatabas3/bizflow/internal/util"
)

// Field es el tipo de campo estructurado de zap.
type Field = zap.Field

// Campos estándar para logs estructurados.

func RequestID(v string) zap.Field  { return zap.String("request_id", v) }
func Method(v string) zap.Field     { return zap.String("method", v) }
func Path(v string) zap.Field       { return zap.String("path", v) }
func Status(v int) zap.Field        { return zap.Int("status", v) }
func Bytes(v int) zap.Field         { return zap.Int("bytes", v) }
func DurationMs(v int64) zap.Field  { return zap.Int64("duration_ms", v) }
func ClientIP(v string) zap.Field   { return zap.String("client_ip", v) }
func Locale(v string) zap.Field     { return zap.String("locale", v) }
func Redirect(v string) zap.Field   { return zap.String("location", v) }
func CookieName(v string) zap.Field { return zap.String("cookie", v) }
func UserAgent(v string) zap.Field  { return zap.String("user_agent", v) }
func Component(v string) zap.Field  { return zap.String("component", v) }
func Layer(v string) zap.Field      { return zap.String("layer", v) }
func Op(v string) zap.Field         { return zap.String("op", v) }
func Err(err error) zap.Field       { return zap.Error(err) }
func Count(v int) zap.Field         { return zap.Int("count", v) }
func UserID(v string) zap.Field     { return zap.String("user_id", v) }
func CustomerID(v string) zap.Field { return zap.String("customer_id", v) }
func FormID(v string) zap.Field     { return zap.String("form_id", v) }

// Email crea un campo con el email enmascarado.
func Email(v string) zap.Field { return zap.String("email", util.MaskEmail(v)) }

func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
