package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCommand   = "command"
	FieldRecordID  = "record_id"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldDuration  = "duration_ms"
	FieldExpenses  = "expenses"
	FieldIncomes   = "incomes"
	FieldBudgets   = "budgets"
	FieldMessageID = "message_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
	ComponentCommand = "command"
	ComponentUI      = "ui"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpPublish  = "publish"
	OpParse    = "parse"
	OpExecute  = "execute"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds the error message; a nil error adds nothing.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithCommand(kind string) LogFields {
	f[FieldCommand] = kind
	return f
}

// WithCounts records the registry sizes after a command ran.
func (f LogFields) WithCounts(expenses, incomes, budgets int) LogFields {
	f[FieldExpenses] = expenses
	f[FieldIncomes] = incomes
	f[FieldBudgets] = budgets
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
