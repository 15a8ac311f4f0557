package rabbitmq

import (
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/core/port"
	"github.com/omriland/CasaTrack-sub000/pkg/rabbitmq/rabbitmq_common"
)

// PkgLoggerBridge adapts the application LoggerPort onto the
// key/value logger the pkg rabbitmq helpers expect.
type PkgLoggerBridge struct {
	logger port.LoggerPort
}

// NewPkgLoggerBridge creates the bridge.
func NewPkgLoggerBridge(logger port.LoggerPort) rabbitmq_common.Logger {
	return &PkgLoggerBridge{logger: logger}
}

func (b *PkgLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.logger.Debug(msg, kvToFields(keysAndValues))
}

func (b *PkgLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, kvToFields(keysAndValues))
}

func (b *PkgLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.logger.Warn(msg, kvToFields(keysAndValues))
}

func (b *PkgLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, err, kvToFields(keysAndValues))
}

func kvToFields(keysAndValues []interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
