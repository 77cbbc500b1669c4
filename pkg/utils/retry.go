package utils

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBaseWait = 500 * time.Millisecond
)

// WithRetry executa fn com backoff exponencial simples. Usado apenas nas
// chamadas HTTP dos clientes de plataforma; o loop de monitoramento não
// aplica retry próprio.
func WithRetry(operation string, fn func() error) error {
	var err error

	wait := defaultRetryBaseWait
	for attempt := 1; attempt <= defaultRetryAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		if attempt < defaultRetryAttempts {
			logrus.WithFields(logrus.Fields{
				"operation": operation,
				"attempt":   attempt,
				"wait":      wait.String(),
				"error":     err.Error(),
			}).Warn("Falha temporária, tentando novamente")

			time.Sleep(wait)
			wait *= 2
		}
	}

	return err
}
