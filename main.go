package main

import (
	"rubikpi-setup/cmd"
)

// main is the program entry point. It delegates to cmd.Execute, which parses
// the command line and runs the provisioning.
//
// rubikpi-setup prepares a RUBIK Pi 3 running Ubuntu:
//   - optionally sets the hostname and the matching /etc/hosts alias
//   - adds the vendor apt repository, its host mapping and signing key
//   - installs the camera stack and the vendor AI/audio packages
//   - upgrades the system
//   - reboots, unless --no-reboot is given
//
// Actions always run in that order and the first failure stops the run, with
// a hint listing the flags that resume from the failed action.
func main() {
	cmd.Execute()
}
