package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/wordchain/business/web/errs"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

var errBlock = errors.New("block not found")

func Test_ToResponse(t *testing.T) {
	type table struct {
		name   string
		err    error
		status int
		msg    string
	}

	tt := []table{
		{name: "notfound", err: errs.NotFound(errBlock), status: http.StatusNotFound, msg: "block not found"},
		{name: "badrequest", err: errs.BadRequest(errors.New("bad number")), status: http.StatusBadRequest, msg: "bad number"},
		{name: "wrapped", err: fmt.Errorf("handler: %w", errs.NotFound(errBlock)), status: http.StatusNotFound, msg: "block not found"},
		{name: "untrusted", err: errors.New("database offline"), status: http.StatusInternalServerError, msg: "Internal Server Error"},
	}

	t.Log("Given the need to turn errors into client responses.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen the error is %s.", testID, tst.name)
				{
					resp, status := errs.ToResponse(tst.err, "trace")
					if status != tst.status {
						t.Fatalf("\t%s\tTest %d:\tShould get status %d, got %d.", failed, testID, tst.status, status)
					}
					t.Logf("\t%s\tTest %d:\tShould get status %d.", success, testID, tst.status)

					if resp.Error != tst.msg || resp.TraceID != "trace" {
						t.Fatalf("\t%s\tTest %d:\tShould get message %q, got %q.", failed, testID, tst.msg, resp.Error)
					}
					t.Logf("\t%s\tTest %d:\tShould get message %q.", success, testID, tst.msg)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Unwrap(t *testing.T) {
	t.Log("Given the need to match sentinel errors through a trusted error.")
	{
		t.Logf("\tTest 0:\tWhen a sentinel is wrapped.")
		{
			if !errors.Is(errs.NotFound(errBlock), errBlock) {
				t.Fatalf("\t%s\tTest 0:\tShould find the sentinel.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould find the sentinel.", success)
		}
	}
}
