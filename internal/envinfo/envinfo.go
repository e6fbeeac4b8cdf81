// Package envinfo captures the environment a benchmark ran in.
package envinfo

import (
	"context"
	"runtime"

	"github.com/tidwall/gjson"

	"soulbench/internal/browser"
)

// Env records host and browser identifiers for the report. Browser-reported
// fields are best effort and zero-valued when the platform does not expose
// them.
type Env struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CPUs int    `json:"cpus"`

	UserAgent           string  `json:"userAgent,omitempty"`
	HardwareConcurrency int     `json:"hardwareConcurrency,omitempty"`
	DeviceMemoryGB      float64 `json:"deviceMemoryGB,omitempty"`
	GPU                 string  `json:"gpu,omitempty"`
}

const collectJS = `(() => {
	const out = {};
	try {
		out.userAgent = navigator.userAgent;
		out.hardwareConcurrency = navigator.hardwareConcurrency || 0;
		out.deviceMemory = navigator.deviceMemory || 0;
		const canvas = document.createElement('canvas');
		const gl = canvas.getContext('webgl') || canvas.getContext('experimental-webgl');
		if (gl) {
			const info = gl.getExtension('WEBGL_debug_renderer_info');
			if (info) {
				out.gpu = gl.getParameter(info.UNMASKED_RENDERER_WEBGL);
			}
		}
	} catch (e) {
		// partial result is fine
	}
	return JSON.stringify(out);
})()`

// Host returns the host-side environment facts.
func Host() Env {
	return Env{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
		CPUs: runtime.NumCPU(),
	}
}

// Collect fills an Env with host facts plus whatever the page reports.
// Never fails: a page that cannot answer leaves the browser fields zero.
func Collect(ctx context.Context, page browser.Page) Env {
	env := Host()

	var raw string
	if err := page.Evaluate(ctx, collectJS, &raw); err != nil || !gjson.Valid(raw) {
		return env
	}

	env.UserAgent = gjson.Get(raw, "userAgent").String()
	env.HardwareConcurrency = int(gjson.Get(raw, "hardwareConcurrency").Int())
	env.DeviceMemoryGB = gjson.Get(raw, "deviceMemory").Float()
	env.GPU = gjson.Get(raw, "gpu").String()

	return env
}
