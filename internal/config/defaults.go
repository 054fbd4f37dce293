package config

import "time"

// Default returns the built-in configuration for a stock RUBIK Pi 3 Ubuntu image.
func Default() *Config {
	return &Config{
		System: System{
			HostsFile:       "/etc/hosts",
			LoopbackAddress: "127.0.1.1",
			StateFile:       "/var/lib/rubikpi-setup/state.json",
		},
		Repository: Repository{
			SourcesList:      "/etc/apt/sources.list",
			Line:             "deb http://apt.rubikpi.ai ppa main",
			HostsEntry:       "151.106.120.85 apt.rubikpi.ai",
			KeyURL:           "https://thundercomm.s3.dualstack.ap-northeast-1.amazonaws.com/uploads/web/rubik-pi-3/tools/key.asc",
			KeyPath:          "/etc/apt/trusted.gpg.d/rubikpi3.asc",
			KeyFetchTimeout:  2 * time.Minute,
			KeyFetchAttempts: 3,
		},
		Camera: Camera{
			SharedDir:       "/opt",
			SharedDirMode:   0o777,
			EnvLine:         "export XDG_RUNTIME_DIR=/run/user/$(id -u ubuntu)",
			RootRC:          "/root/.bashrc",
			CacheDir:        "/var/cache/camera",
			OverrideFile:    "/var/cache/camera/camxoverridesettings.txt",
			OverrideSetting: "enableNCSService=FALSE",
			Packages: []string{
				"qcom-ib2c",
				"qcom-camera-server",
				"qcom-camx",
				"qcom-video-firmware",
				"qcom-adreno1",
				"libgbm-msm1",
				"weston-autostart",
			},
			AppPackages: []string{
				"gstreamer1.0-tools",
				"gstreamer1.0-plugins-good",
				"gstreamer1.0-plugins-base-apps",
				"gstreamer1.0-qcom-sample-apps",
				"qcom-fastcv-binaries-dev",
			},
		},
		Software: Software{
			Packages: []string{
				"rubikpi3-cameras",
				"qcom-sensors-test-apps",
				"tensorflow-lite-qcom-apps",
				"qnn-tools",
				"snpe-tools",
				"pulseaudio-utils",
				"alsa-utils",
				"net-tools",
				"wget",
			},
		},
		Reboot: Reboot{
			Delay:   10 * time.Second,
			Command: []string{"reboot"},
		},
	}
}
