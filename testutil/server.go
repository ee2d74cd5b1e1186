/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewServer starts an httptest server whose routes are registered on a bare
// gin engine. The server is closed when the test ends.
func NewServer(t *testing.T, routes func(r *gin.Engine)) *httptest.Server {
	t.Helper()

	r := gin.New()
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
