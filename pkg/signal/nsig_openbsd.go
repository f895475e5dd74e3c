package signal

const maxSignal Signal = 32
