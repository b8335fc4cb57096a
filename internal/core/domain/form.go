package domain

// FormValues - именованные значения формы записи, как их прислала страница.
// Явный объект вместо чтения глобального состояния: экстрактор видит только
// то, что ему передали.
type FormValues map[string]string

func (f FormValues) Get(name string) string {
	return f[name]
}

type MessageSeverity string

const (
	SeveritySuccess MessageSeverity = "success"
	SeverityDanger  MessageSeverity = "danger"
	SeverityWarning MessageSeverity = "warning"
)
