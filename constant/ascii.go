package constant

// AsciiArtLogo is the banner shown in the root command help.
const AsciiArtLogo = `        __      _                _
  __ _ / _| ___| |__   __ _ _ __| |_ ___
 / _` + "`" + ` | |_ / __| '_ \ / _` + "`" + ` | '__| __/ __|
| (_| |  _| (__| | | | (_| | |  | |_\__ \
 \__,_|_|  \___|_| |_|\__,_|_|   \__|___/`
