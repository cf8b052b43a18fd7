// Command linkctl клиент сервиса коротких ссылок: список, создание, переход,
// удаление, выгрузка CSV и страница переходов.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	logger := newConsoleLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Fatal("linkctl failed", zap.Error(err))
	}
}

// newConsoleLogger логгер для терминала: без времени, вызывающего и стектрейсов.
func newConsoleLogger() *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableCaller = true
	zcfg.DisableStacktrace = true
	zcfg.EncoderConfig.TimeKey = ""
	return zap.Must(zcfg.Build())
}
