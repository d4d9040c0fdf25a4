package registry

import "strings"

// Version reported by the beacon registry's "version" command.
const Version = "1.0.0"

// Beacon builds the reference command set of the beacon control
// deployment. Parameter commands echo their argument back as a
// confirmation; bare invocations return an example response.
func Beacon() *Registry {
	r := New()
	for _, c := range []struct{ name, noun string }{
		{"transmit", "Transmit"},
		{"call", "Call"},
		{"grid", "Grid"},
		{"power", "Power"},
		{"freq", "Freq"},
		{"ppm", "PPM"},
		{"selfcal", "SelfCal"},
		{"offset", "Offset"},
		{"led", "LED"},
	} {
		r.Register(c.name, setOrExample(c.noun))
	}
	r.Register("port", fixed("Port <example response>"))
	r.Register("xmit", fixed("Xmit <example response>"))
	r.Register("version", fixed("Version "+Version))
	r.Register("help", func(string) string {
		return "Available commands: " + strings.Join(r.Commands(), ", ")
	})
	return r
}

func setOrExample(noun string) HandlerFunc {
	return func(argument string) string {
		if argument == "" {
			return noun + " <example response>"
		}
		return noun + " set to " + argument
	}
}

func fixed(response string) HandlerFunc {
	return func(string) string { return response }
}
