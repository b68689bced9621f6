package utils

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestPasswordHashAndCheck(t *testing.T) {
	c := qt.New(t)

	hash, err := HashPassword("s3cret-pass")
	c.Assert(err, qt.IsNil)
	c.Assert(hash, qt.Not(qt.Equals), "s3cret-pass")

	c.Assert(CheckPassword(hash, "s3cret-pass"), qt.IsTrue)
	c.Assert(CheckPassword(hash, "wrong"), qt.IsFalse)
	c.Assert(CheckPassword("not-a-hash", "s3cret-pass"), qt.IsFalse)
}
