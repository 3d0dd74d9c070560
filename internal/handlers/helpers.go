package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
)

const maxUploadBytes = 10 << 20

// fail registra erros inesperados e responde no formato padrão.
func fail(c *gin.Context, err error, code, message string) {
	if _, ok := httperr.BusinessCode(err); !ok {
		logger.FromGin(c).Error(code, zap.Error(err))
	}
	httperr.WriteError(c, err, code, message)
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
}

// uploadedFile lê o campo multipart "file"; sem multipart usa o corpo cru.
func uploadedFile(c *gin.Context) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxUploadBytes))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// bindError preserva erros de negócio vindos do JSON (ex.: papel inválido).
func bindError(err error) error {
	if _, ok := httperr.BusinessCode(err); ok {
		return err
	}
	return httperr.ErrBusiness("invalid_request")
}
