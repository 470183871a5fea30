package port

// Fields - структурированные данные, прикладываемые к записи лога
type Fields map[string]interface{}

// LoggerPort - контракт логирования для ядра и адаптеров
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields возвращает логгер с уже прикрепленными полями
	WithFields(fields Fields) LoggerPort
}
