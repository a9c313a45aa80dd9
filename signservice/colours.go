package signservice

import (
	"github.com/rs/zerolog/log"
)

const (
	green      = "\033[32m"
	blue       = "\033[34m"
	gray       = "\033[90m"
	resetColor = "\033[0m"
)

var methodColors = map[string]string{
	"GET":  green,
	"POST": blue,
}

func logRoute(method, path string) {
	color, ok := methodColors[method]
	if !ok {
		color = gray
	}
	log.Info().Msgf("[%s %-7s%s] %s", color, method, resetColor, path)
}
