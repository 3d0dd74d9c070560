package repository

import "github.com/google/uuid"

// validID: as chaves são UUID; texto fora do formato não existe no banco
// e, sem a checagem, o Postgres responderia 22P02.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
