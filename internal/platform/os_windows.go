package platform

const osIdentifier = Windows
