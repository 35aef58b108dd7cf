package insights

import "github.com/labstack/echo/v4"

type Handler interface {
	Summarize() echo.HandlerFunc
	Chat() echo.HandlerFunc
}
