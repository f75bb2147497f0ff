package we

const tracerName = "wee-counter/we"
