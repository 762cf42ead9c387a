package engine

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder принимает метрики движка (реализуется pkg/metrics)
type Recorder interface {
	ObserveCommand(command, result string)
	ObserveUndo(command, result string)
	SetHistorySize(size int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCommand(string, string) {}
func (nopRecorder) ObserveUndo(string, string)    {}
func (nopRecorder) SetHistorySize(int)            {}
