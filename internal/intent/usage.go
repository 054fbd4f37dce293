package intent

// Usage is printed for -h/--help.
const Usage = `Usage: rubikpi-setup [options]

Provision a RUBIK Pi 3: add the vendor package repository, install the camera,
AI and audio packages, optionally set the hostname, upgrade and reboot.

Options:
  -h, --help            Show this help message and exit
  -p, --ppa-only        Add the RUBIK Pi package repository
  -c, --camera-only     Install camera packages and settings
  -s, --software-only   Install RUBIK Pi software packages
  -u, --upgrade-only    Upgrade all installed packages
  -a, --all             Run all of the above (default when none is given)
      --no-reboot       Do not reboot when finished
      --hostname=NAME   Set the system hostname to NAME
      --dry-run         Print what would be done without changing the system
      --debug           Enable debug logging
      --config=PATH     Load configuration overrides from a YAML file

Options -p, -c, -s and -u may be combined. Running without any of them keeps the
original behavior: every step runs and the board reboots at the end.

Examples:
  sudo rubikpi-setup
  sudo rubikpi-setup --camera-only --no-reboot
  sudo rubikpi-setup --hostname=mypi -p -s
`
