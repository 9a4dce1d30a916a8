package decorator

import (
	"context"
	"strings"

	"github.com/Suleiman-Moraes/device-api/pkg/logger"
)

type (
	commandLoggingDecorator[C Command, R any] struct {
		base   CommandHandler[C, R]
		logger logger.Logger
	}

	queryLoggingDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		logger logger.Logger
	}
)

func (d commandLoggingDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	actionName := strings.ToLower(generateActionName(cmd))

	log := d.logger.WithContext(ctx).With().
		Str("command", actionName).
		Logger()

	log.Debug().Msg("executing command")

	defer func() {
		if err == nil {
			log.Debug().Msg("command executed successfully")

			return
		}

		log.Error().Err(err).Msg("failed to execute command")
	}()

	return d.base.Handle(ctx, cmd)
}

func (d queryLoggingDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	actionName := strings.ToLower(generateActionName(query))

	log := d.logger.WithContext(ctx).With().
		Str("query", actionName).
		Logger()

	log.Debug().Msg("executing query")

	defer func() {
		if err == nil {
			log.Debug().Msg("query executed successfully")

			return
		}

		log.Error().Err(err).Msg("failed to execute query")
	}()

	return d.base.Execute(ctx, query)
}
