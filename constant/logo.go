package constant

// AsciiArtLogo is the banner printed in the root command help.
const AsciiArtLogo = `
 ___  ___ _ __(_) ___  ___   __ _  ___ _ __ (_)_   _ ___
/ __|/ _ \ '__| |/ _ \/ __| / _' |/ _ \ '_ \| | | | / __|
\__ \  __/ |  | |  __/\__ \| (_| |  __/ | | | | |_| \__ \
|___/\___|_|  |_|\___||___/ \__, |\___|_| |_|_|\__,_|___/
                            |___/`
