package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndDispatch(t *testing.T) {
	r := New()
	r.Register("ping", func(arg string) string { return "pong " + arg })

	assert.Equal(t, "pong now", r.Dispatch("ping", "now"))
	assert.Equal(t, "pong ", r.Dispatch("ping", ""))
}

func TestDispatchUnknownCommand(t *testing.T) {
	r := New()
	assert.Equal(t,
		"ERROR: Unknown command 'bogus'. Type 'help' for a list of commands.",
		r.Dispatch("bogus", "whatever"))
}

func TestRegisterReplacesAndRemoves(t *testing.T) {
	r := New()
	r.Register("x", func(string) string { return "one" })
	r.Register("x", func(string) string { return "two" })
	assert.Equal(t, "two", r.Dispatch("x", ""))
	assert.Equal(t, []string{"x"}, r.Commands())

	r.Register("x", nil)
	assert.Empty(t, r.Commands())
	assert.Contains(t, r.Dispatch("x", ""), "Unknown command")
}

func TestCommandsPreservesRegistrationOrder(t *testing.T) {
	r := New()
	for _, name := range []string{"c", "a", "b"} {
		r.Register(name, func(string) string { return "" })
	}
	assert.Equal(t, []string{"c", "a", "b"}, r.Commands())
}

func TestConcurrentDispatch(t *testing.T) {
	r := New()
	r.Register("n", func(arg string) string { return arg })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			arg := fmt.Sprintf("%d", i)
			assert.Equal(t, arg, r.Dispatch("n", arg))
		}(i)
	}
	wg.Wait()
}

func TestBeaconVocabulary(t *testing.T) {
	r := Beacon()

	want := []string{
		"transmit", "call", "grid", "power", "freq", "ppm", "selfcal",
		"offset", "led", "port", "xmit", "version", "help",
	}
	require.Equal(t, want, r.Commands())

	assert.Equal(t, "Power set to 100", r.Dispatch("power", "100"))
	assert.Equal(t, "Power <example response>", r.Dispatch("power", ""))
	assert.Equal(t, "Call set to AB1CDE", r.Dispatch("call", "AB1CDE"))
	assert.Equal(t, "Port <example response>", r.Dispatch("port", ""))
	assert.Equal(t, "Version "+Version, r.Dispatch("version", ""))
}

func TestBeaconHelpListsEverything(t *testing.T) {
	r := Beacon()
	help := r.Dispatch("help", "")
	assert.Equal(t,
		"Available commands: transmit, call, grid, power, freq, ppm, selfcal, offset, led, port, xmit, version, help",
		help)
}
