package transcript

import "github.com/labstack/echo/v4"

type Handler interface {
	SubmitJob() echo.HandlerFunc
	GetJobStatus() echo.HandlerFunc
	CancelJob() echo.HandlerFunc
}
