package util

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/hauke96/sigolo/v2"
)

func AssertEqual(t *testing.T, expected any, actual any) {
	if !reflect.DeepEqual(expected, actual) {
		sigolo.Errorb(1, "Expect to be equal.\nExpected: %+v\n----------\nActual  : %+v\n", expected, actual)
		t.Fail()
	}
}

func AssertApprox[T float32 | float64](t *testing.T, expected T, actual T, accuracy T) {
	if math.Abs(float64(expected-actual)) > float64(accuracy) {
		sigolo.Errorb(1, "Expect to be approximately equal (accuracy %v).\nExpected: %v\nActual  : %v", accuracy, expected, actual)
		t.Fail()
	}
}

func AssertNil(t *testing.T, value any) {
	if value != nil && !reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertNotNil(t *testing.T, value any) {
	if value == nil || reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect NOT to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertError(t *testing.T, expectedMessage string, err error) {
	if err == nil || expectedMessage != err.Error() {
		sigolo.Errorb(1, "Expected message: %s\nActual error    : %v", expectedMessage, err)
		t.Fail()
	}
}

func AssertErrorContains(t *testing.T, expectedSubstring string, err error) {
	if err == nil || !strings.Contains(err.Error(), expectedSubstring) {
		sigolo.Errorb(1, "Expected error containing: %s\nActual error: %v", expectedSubstring, err)
		t.Fail()
	}
}

func AssertTrue(t *testing.T, b bool) {
	if !b {
		sigolo.Errorb(1, "Expected true but got false")
		t.Fail()
	}
}

func AssertFalse(t *testing.T, b bool) {
	if b {
		sigolo.Errorb(1, "Expected false but got true")
		t.Fail()
	}
}
