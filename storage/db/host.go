// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// HostParameters describes the machine the analysis runs on, for
// SetParameters. Facts that cannot be determined are left out.
func HostParameters() map[string]string {
	params := map[string]string{
		"host_arch": runtime.GOARCH,
	}
	if info, err := host.Info(); err == nil {
		params["host_name"] = info.Hostname
		params["host_platform"] = info.Platform
		params["host_platform_version"] = info.PlatformVersion
		params["host_kernel"] = info.KernelVersion
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		params["host_cpu_count"] = fmt.Sprint(len(cpus))
		params["host_cpu_model"] = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		params["host_ram_gib"] = fmt.Sprintf("%.1f", float64(vm.Total)/1024/1024/1024)
	}
	return params
}
